package locatorlib

// Location is a result of the lookup. Empty fields mean unknown.
type Location struct {
	IP       string `json:"ip"`
	Country  string `json:"country"`
	Province string `json:"province"`
	City     string `json:"city"`
}

// Known tells if at least one location field is mapped.
func (l Location) Known() bool {
	return l.Country != "" || l.Province != "" || l.City != ""
}
