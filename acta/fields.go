package acta

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var upperES = cases.Upper(language.Spanish)

// clean trims s and folds it to NFC so decomposed accents from the API
// measure and render like their precomposed forms.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Upper upper-cases s with Spanish rules.
func Upper(s string) string { return upperES.String(clean(s)) }

func (p Person) normalized() Person {
	return Person{
		Grade:      clean(p.Grade),
		Name:       clean(p.Name),
		Surname:    clean(p.Surname),
		NationalID: clean(p.NationalID),
	}
}

// Normalized returns a copy of r with every string trimmed and in NFC.
func (r Record) Normalized() Record {
	out := Record{
		Code:          clean(r.Code),
		Date:          clean(r.Date),
		Time:          clean(r.Time),
		Giver:         r.Giver.normalized(),
		Receiver:      r.Receiver.normalized(),
		Location:      clean(r.Location),
		OtherLocation: clean(r.OtherLocation),
		Description:   clean(r.Description),
		Items:         make([]Asset, len(r.Items)),
	}
	for i, a := range r.Items {
		out.Items[i] = Asset{
			Code:        clean(a.Code),
			Name:        clean(a.Name),
			Location:    clean(a.Location),
			Category:    clean(a.Category),
			Subcategory: clean(a.Subcategory),
			Status:      clean(a.Status),
		}
	}
	return out
}

func (p Person) fields() map[string]any {
	return map[string]any{
		"grade":      p.Grade,
		"name":       p.Name,
		"surname":    p.Surname,
		"fullName":   p.FullName(),
		"upperName":  Upper(p.FullName()),
		"nationalID": p.NationalID,
	}
}

// Fields exposes r to ${path} placeholders in flavor text:
//
//	code date time location description itemCount
//	giver.{grade,name,surname,fullName,upperName,nationalID}
//	receiver.{...}
func (r Record) Fields() map[string]any {
	return map[string]any{
		"code":        r.Code,
		"date":        FormatDate(r.Date),
		"time":        recordClock(r),
		"location":    r.Place(),
		"description": r.Description,
		"itemCount":   strconv.Itoa(len(r.Items)),
		"giver":       r.Giver.fields(),
		"receiver":    r.Receiver.fields(),
	}
}
