package models

// Student is a record held by the student store. The capitalised Gender key is part of the wire format.
type Student struct {
	Name   string `json:"name"`
	Gender string `json:"Gender"`
	Age    int    `json:"age"`
}
