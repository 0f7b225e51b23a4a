package libreview

import (
	"bytes"
	"encoding/json"
	"time"
)

// factoryTimestampLayout is the capture-time format used by the graph
// endpoint: month/day/year with a 12-hour clock. Timestamps are UTC.
const factoryTimestampLayout = "01/02/2006 03:04:05 PM"

// Timestamp parses the API's "MM/DD/YYYY hh:mm:ss AM/PM" format as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.ParseInLocation(factoryTimestampLayout, s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.UTC().Format(factoryTimestampLayout))
}

// FlexID accepts a JSON string or number and keeps its string form. The
// account endpoint has returned the user id as either over time.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

type authTicket struct {
	Token    string `json:"token"`
	Expires  int64  `json:"expires"`
	Duration int64  `json:"duration"`
}

type loginResponse struct {
	Data *struct {
		AuthTicket authTicket `json:"authTicket"`
	} `json:"data"`
}

type accountResponse struct {
	Data *struct {
		User struct {
			ID FlexID `json:"id"`
		} `json:"user"`
	} `json:"data"`
}

// Connection is one monitored patient/device pairing of the account.
type Connection struct {
	PatientID string `json:"patientId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// connectionsResponse defers decoding of "data": the listing is usually an
// array, but a shapeless value there is a soft absence, not an error, so
// PatientID inspects the raw form itself.
type connectionsResponse struct {
	Data json.RawMessage `json:"data"`
}

// Reading is a single glucose measurement.
type Reading struct {
	Value            float64   `json:"Value"`
	FactoryTimestamp Timestamp `json:"FactoryTimestamp"`
}

// GraphPayload is the caller-facing value under the graph endpoint's "data"
// key. Readings are returned unfiltered; interpreting them is up to the
// caller.
type GraphPayload struct {
	Connection json.RawMessage `json:"connection,omitempty"`
	GraphData  []Reading       `json:"graphData"`
}

// Latest returns the most recent reading (the list's last element) and
// whether one exists.
func (p *GraphPayload) Latest() (Reading, bool) {
	if p == nil || len(p.GraphData) == 0 {
		return Reading{}, false
	}
	return p.GraphData[len(p.GraphData)-1], true
}

type graphResponse struct {
	Data *GraphPayload `json:"data"`
}
