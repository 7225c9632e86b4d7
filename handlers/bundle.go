package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	JWTSecret         []byte
	MaxRequestsPerMin int
	TrustedProxies    []string

	Availability    *AvailabilityHandler
	ScheduleRequest *ScheduleRequestHandler
	Reference       *ReferenceHandler
	Week            *WeekHandler
	Admin           *AdminHandler
}
