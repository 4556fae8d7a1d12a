package intake

// Service codes posted by the booking form's service_type select.
const (
	ServiceDeepOneTime     = "deep_onetime"
	ServiceRegularWeekly   = "regular_weekly"
	ServiceRegularBiweekly = "regular_biweekly"
	ServiceMoveOut         = "move_out"
)

// DefaultServiceID is used for any code not in the table.
const DefaultServiceID = 1

// Weekly and bi-weekly cleaning share id 2; the store has no separate
// category for the bi-weekly cadence.
var serviceIDs = map[string]int{
	ServiceDeepOneTime:     1,
	ServiceRegularWeekly:   2,
	ServiceRegularBiweekly: 2,
	ServiceMoveOut:         4,
}

var serviceLabels = map[string]string{
	ServiceDeepOneTime:     "Deep Cleaning / One Time",
	ServiceRegularWeekly:   "Regular Cleaning / Weekly",
	ServiceRegularBiweekly: "Regular Cleaning / Bi-Weekly",
	ServiceMoveOut:         "Move-in/Move-out Cleaning",
}

// ServiceID maps a service code to its stored identifier.
func ServiceID(code string) int {
	if id, ok := serviceIDs[code]; ok {
		return id
	}
	return DefaultServiceID
}

// ServiceLabel maps a service code to its display name, echoing unknown codes.
func ServiceLabel(code string) string {
	if label, ok := serviceLabels[code]; ok {
		return label
	}
	return code
}
