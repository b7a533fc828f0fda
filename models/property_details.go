package models

// AddressIDRequest is the body of POST /Address/Id.
type AddressIDRequest struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	ExactMatch   string `json:"ExactMatch"`
}

// AddressResponse lists the people found at an address.
type AddressResponse struct {
	Persons []Person `json:"persons"`
	IsError bool     `json:"isError"`
}

type Person struct {
	Name      PersonName    `json:"name"`
	Age       string        `json:"age"`
	Addresses []interface{} `json:"addresses"`
	Phones    []PersonPhone `json:"phones"`
	Emails    []PersonEmail `json:"emails"`
}

type PersonName struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
}

type PersonPhone struct {
	Number            string `json:"number"`
	Type              string `json:"type"`
	IsConnected       bool   `json:"isConnected"`
	FirstReportedDate string `json:"firstReportedDate"`
	LastReportedDate  string `json:"lastReportedDate"`
}

type PersonEmail struct {
	Email       string `json:"email"`
	IsBusiness  bool   `json:"isBusiness"`
	IsValidated bool   `json:"isValidated"`
}
