package daycounter

import "time"

const (
	Title            = "Day Counter App"
	DatePlaceholder  = "Select Date to Count"
	dateLabelLayout  = "Mon Jan 02 2006"
	pickerDateLayout = dateOnlyLayout
)

// View is what a client renders: title, tappable date label, the badge
// count and the picker.
type View struct {
	Title         string `json:"title"`
	DateLabel     string `json:"date_label"`
	StartDate     string `json:"start_date,omitempty"`
	DaysCount     int    `json:"days_count"`
	PickerVisible bool   `json:"picker_visible"`
	PickerDate    string `json:"picker_date,omitempty"`
}

func DateLabel(start *time.Time) string {
	if start == nil {
		return DatePlaceholder
	}
	return start.Format(dateLabelLayout)
}
