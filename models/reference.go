package models

// Kelas is a class (student group).
type Kelas struct {
	ID   int64  `json:"id" validate:"required"`
	Nama string `json:"nama"`
}

// MataPelajaran is a subject.
type MataPelajaran struct {
	ID   int64  `json:"id" validate:"required"`
	Nama string `json:"nama"`
}

// Mentor is a tutor record as listed by the platform.
type Mentor struct {
	ID     int64  `json:"id" validate:"required"`
	Nama   string `json:"nama"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status,omitempty"`
}

// JadwalSesi is a scheduled tutoring session.
type JadwalSesi struct {
	ID              int64      `json:"id" validate:"required"`
	MentorID        int64      `json:"mentor_id"`
	KelasID         int64      `json:"kelas_id"`
	MataPelajaranID int64      `json:"mata_pelajaran_id"`
	Tanggal         string     `json:"tanggal"`
	Sesi            FlexString `json:"sesi"`
	Status          string     `json:"status,omitempty"`
}

// Pengumuman is an announcement shown on the dashboard.
type Pengumuman struct {
	ID        int64  `json:"id" validate:"required"`
	Judul     string `json:"judul"`
	Isi       string `json:"isi"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Silabus is a named curriculum document.
type Silabus struct {
	ID              int64  `json:"id" validate:"required"`
	Nama            string `json:"nama"`
	MataPelajaranID int64  `json:"mata_pelajaran_id,omitempty"`
	FileURL         string `json:"file_url,omitempty"`
}

// Reference collections served read-only to dashboard pages.
const (
	CollectionKelas         = "kelas"
	CollectionMataPelajaran = "mata-pelajaran"
	CollectionMentors       = "mentors"
	CollectionJadwalSesi    = "jadwal-sesi"
	CollectionPengumuman    = "pengumuman"
	CollectionSilabus       = "silabus"
)

// ReferenceCollections lists every collection LoadDashboard fetches.
var ReferenceCollections = []string{
	CollectionKelas,
	CollectionMataPelajaran,
	CollectionMentors,
	CollectionJadwalSesi,
	CollectionPengumuman,
	CollectionSilabus,
}

// DashboardReference bundles the reference data a dashboard page needs.
type DashboardReference struct {
	Kelas         []Kelas         `json:"kelas"`
	MataPelajaran []MataPelajaran `json:"mata_pelajaran"`
	Mentors       []Mentor        `json:"mentors"`
	JadwalSesi    []JadwalSesi    `json:"jadwal_sesi"`
	Pengumuman    []Pengumuman    `json:"pengumuman"`
	Silabus       []Silabus       `json:"silabus"`
}
