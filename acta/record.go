package acta

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Person identifies one party of the act.
type Person struct {
	Grade      string `json:"grade"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	NationalID string `json:"nationalId"`
}

// FullName joins name and surname, skipping the empty one.
func (p Person) FullName() string {
	return strings.Join(strings.Fields(p.Name+" "+p.Surname), " ")
}

// Asset is one line item of the act.
type Asset struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Status      string `json:"status"`
}

// Record is the handover or return record supplied by the inventory API.
// Both flavors share the same shape; only the wording differs. Composition
// never mutates a Record.
type Record struct {
	Code          string  `json:"code"`
	Date          string  `json:"date"` // 2006-01-02 or RFC 3339
	Time          string  `json:"time"` // 15:04 or 15:04:05
	Giver         Person  `json:"giver"`
	Receiver      Person  `json:"receiver"`
	Location      string  `json:"location"`
	OtherLocation string  `json:"otherLocation"`
	Description   string  `json:"description"`
	Items         []Asset `json:"items"`
}

// Place returns the other-location override when set, else the location.
func (r Record) Place() string {
	if strings.TrimSpace(r.OtherLocation) != "" {
		return r.OtherLocation
	}
	return r.Location
}

// DecodeRecord reads one JSON record.
func DecodeRecord(rd io.Reader) (Record, error) {
	var rec Record
	if err := json.NewDecoder(rd).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}
