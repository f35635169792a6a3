package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Application statuses (exact match with the values stored in applications.status)
const (
	StatusSubmitted        = "Submitted"
	StatusUnderReview      = "Under Review"
	StatusEligible         = "Eligible"
	StatusRejected         = "Rejected"
	StatusFundsTransferred = "Funds Transferred"
)

// AllowedStatuses lists every value applications.status may hold.
var AllowedStatuses = []string{
	StatusSubmitted,
	StatusUnderReview,
	StatusEligible,
	StatusRejected,
	StatusFundsTransferred,
}

// Field is one applicant detail as captured from the submission form.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FieldList keeps applicant details in form insertion order. It is stored
// as a JSON array and marshals to a JSON object whose keys keep that order.
type FieldList []Field

// Get returns the value for key and whether it is present.
func (l FieldList) Get(key string) (string, bool) {
	for _, f := range l {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON renders the list as an ordered JSON object.
func (l FieldList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either the ordered-object form or the raw array
// form used in the database column.
func (l *FieldList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var fields []Field
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		*l = fields
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("applicant details must be a JSON object or array")
	}

	var fields FieldList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("applicant detail key must be a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	*l = fields
	return nil
}

// Value implements driver.Valuer so GORM can store the list in a JSON column.
func (l FieldList) Value() (driver.Value, error) {
	data, err := json.Marshal([]Field(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *FieldList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into FieldList", src)
	}
}

// DocumentRef is one uploaded file: a humanized label and its storage path.
type DocumentRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// DocumentList is the ordered set of uploads, stored as a JSON column.
type DocumentList []DocumentRef

func (d DocumentList) Value() (driver.Value, error) {
	data, err := json.Marshal([]DocumentRef(d))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (d *DocumentList) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]DocumentRef)(d))
	case string:
		return json.Unmarshal([]byte(v), (*[]DocumentRef)(d))
	default:
		return fmt.Errorf("cannot scan %T into DocumentList", src)
	}
}

// JSONMap is a free-form JSON object column (bank details).
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, (*map[string]interface{})(m))
	case string:
		return json.Unmarshal([]byte(v), (*map[string]interface{})(m))
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
}

// Application is one scholarship application as submitted through the portal.
type Application struct {
	ApplicationID    int          `gorm:"primaryKey;autoIncrement;column:application_id" json:"application_id"`
	TrackingID       string       `gorm:"column:tracking_id;size:16;uniqueIndex" json:"tracking_id"`
	ApplicantDetails FieldList    `gorm:"column:applicant_details;type:json" json:"applicant_details"`
	Documents        DocumentList `gorm:"column:documents;type:json" json:"documents"`
	PhotoPath        *string      `gorm:"column:photo_path" json:"photo_path,omitempty"`
	Status           string       `gorm:"column:status;size:32;default:Submitted" json:"status"`
	BankDetails      JSONMap      `gorm:"column:bank_details;type:json" json:"bank_details,omitempty"`
	ReviewedBy       *string      `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	CreateAt         *time.Time   `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time   `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (Application) TableName() string {
	return "applications"
}
