package structs

// ChartSeries is a label/value pair list shaped for the admin dashboard
// charts. Days with no orders simply do not appear.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type AdminSummary struct {
	Users      int64 `json:"users"`
	Products   int64 `json:"products"`
	Categories int64 `json:"categories"`
}
