package models

// GeneralSettings is the singleton station profile. It is always present in
// the document and replaced wholesale on update.
type GeneralSettings struct {
	StationName  string `json:"stationName"`
	ManagerName  string `json:"managerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Currency     string `json:"currency"`
	OpeningHours string `json:"openingHours"`
}
