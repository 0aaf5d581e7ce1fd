package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"event-api/core/constants"
)

// DateTime is a time serialized as "YYYY-MM-DD HH:MM:SS" without zone.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(constants.EventDateLayout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("datetime has wrong format, use %q", "YYYY-MM-DD hh:mm:ss")
	}
	return DateTime{Time: t}, nil
}

func (d DateTime) String() string {
	return d.Time.Format(constants.EventDateLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
