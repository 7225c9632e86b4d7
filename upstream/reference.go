package upstream

import (
	"context"

	"mentorhub/models"
)

func (c *Client) ListKelas(ctx context.Context) ([]models.Kelas, error) {
	return getList[models.Kelas](ctx, c, "/kelas", nil)
}

func (c *Client) ListMataPelajaran(ctx context.Context) ([]models.MataPelajaran, error) {
	return getList[models.MataPelajaran](ctx, c, "/mata-pelajaran", nil)
}

func (c *Client) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	return getList[models.Mentor](ctx, c, "/mentors", nil)
}

func (c *Client) ListJadwalSesi(ctx context.Context) ([]models.JadwalSesi, error) {
	return getList[models.JadwalSesi](ctx, c, "/jadwal-sesi", nil)
}

func (c *Client) ListPengumuman(ctx context.Context) ([]models.Pengumuman, error) {
	return getList[models.Pengumuman](ctx, c, "/pengumuman", nil)
}

func (c *Client) ListSilabus(ctx context.Context) ([]models.Silabus, error) {
	return getList[models.Silabus](ctx, c, "/silabus", nil)
}
