package reeve

import (
	"encoding/json"
	"fmt"
	"time"
)

// APIResponse is the uniform envelope returned by every Reeve endpoint.
// Raw keeps the parsed body untouched; the typed fields are a lenient
// view of it.
type APIResponse struct {
	Success    bool
	Result     any
	Error      any
	StatusCode int
	Timestamp  string
	Raw        map[string]any
}

func envelopeFromMap(data map[string]any) *APIResponse {
	resp := &APIResponse{
		Result:     data["result"],
		Error:      data["error"],
		StatusCode: toInt(data["statusCode"]),
		Timestamp:  toString(data["timestamp"]),
		Raw:        data,
	}
	if success, ok := data["success"].(bool); ok {
		resp.Success = success
	} else {
		resp.Success = !isTruthy(data["error"])
	}
	return resp
}

// ResultMap returns the result as an object, or nil when the result is
// absent or has another shape.
func (r *APIResponse) ResultMap() map[string]any {
	m, _ := r.Result.(map[string]any)
	return m
}

// ResultList returns the result as a list, or nil when the result is
// absent or has another shape.
func (r *APIResponse) ResultList() []any {
	l, _ := r.Result.([]any)
	return l
}

// payload returns the map the typed auth results are decoded from: the
// result object when present, the envelope itself otherwise.
func (r *APIResponse) payload() map[string]any {
	if m := r.ResultMap(); m != nil {
		return m
	}
	return r.Raw
}

// Person is an identity record enrolled in the Reeve system.
type Person struct {
	ID        int
	Firstname string
	Lastname  string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// PersonFromMap decodes a Person from an envelope result object.
func PersonFromMap(data map[string]any) Person {
	return Person{
		ID:        toInt(data["id"]),
		Firstname: toString(data["firstname"]),
		Lastname:  toString(data["lastname"]),
		CreatedAt: toTime(data["createdAt"]),
		UpdatedAt: toTime(data["updatedAt"]),
	}
}

// Face is a face image enrolled for a person.
type Face struct {
	ID        int
	Path      string
	PersonID  int
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// FaceFromMap decodes a Face from an envelope result object.
func FaceFromMap(data map[string]any) Face {
	return Face{
		ID:        toInt(data["id"]),
		Path:      toString(data["path"]),
		PersonID:  toInt(data["personId"]),
		CreatedAt: toTime(data["createdAt"]),
		UpdatedAt: toTime(data["updatedAt"]),
	}
}

// FaceAttributes carries the optional demographic and appearance fields
// attached to recognition results. Every field is a free-form string.
type FaceAttributes struct {
	Age         string
	Gender      string
	Expression  string
	Blink       string
	MouthOpen   string
	Glasses     string
	DarkGlasses string
	Ethnicity   string
	Beard       string
	Mustache    string
	Smile       string
	FaceMask    string
}

// FaceAttributesFromMap decodes FaceAttributes from a result object.
func FaceAttributesFromMap(data map[string]any) FaceAttributes {
	return FaceAttributes{
		Age:         toString(data["age"]),
		Gender:      toString(data["gender"]),
		Expression:  toString(data["expression"]),
		Blink:       toString(data["blink"]),
		MouthOpen:   toString(data["mouthOpen"]),
		Glasses:     toString(data["glasses"]),
		DarkGlasses: toString(data["darkGlasses"]),
		Ethnicity:   toString(data["ethnicity"]),
		Beard:       toString(data["beard"]),
		Mustache:    toString(data["mustache"]),
		Smile:       toString(data["smile"]),
		FaceMask:    toString(data["faceMask"]),
	}
}

// IdentifyResult is the best match returned by face recognition.
type IdentifyResult struct {
	Name         string
	Threshold    int
	PersonID     int
	Score        int
	IsMatchFound bool
	Attributes   *FaceAttributes
}

// IdentifyResultFromMap decodes an IdentifyResult from a result object.
// The API spells the threshold key "thresold"; that literal key is read
// here so callers see the corrected name.
func IdentifyResultFromMap(data map[string]any) IdentifyResult {
	result := IdentifyResult{
		Name:         toString(data["name"]),
		Threshold:    toInt(data["thresold"]),
		PersonID:     toInt(data["personId"]),
		Score:        toInt(data["score"]),
		IsMatchFound: toBool(data["isMatchFound"]),
	}
	if attrs, ok := data["attributes"].(map[string]any); ok {
		decoded := FaceAttributesFromMap(attrs)
		result.Attributes = &decoded
	}
	return result
}

// VerificationResult is the outcome of verifying a face against one
// enrolled person.
type VerificationResult struct {
	Success               bool
	VerificationSucceeded bool
	Error                 string
	Score                 int
}

// VerificationResultFromMap decodes a VerificationResult.
func VerificationResultFromMap(data map[string]any) VerificationResult {
	return VerificationResult{
		Success:               toBool(data["success"]),
		VerificationSucceeded: toBool(data["verificationSucceeded"]),
		Error:                 toString(data["error"]),
		Score:                 toInt(data["score"]),
	}
}

// SubjectVerificationResult is the outcome of verifying two faces
// against each other.
type SubjectVerificationResult struct {
	SubjectNotSuitable    bool
	VerificationSucceeded bool
	Score                 int
}

// SubjectVerificationResultFromMap decodes a SubjectVerificationResult.
func SubjectVerificationResultFromMap(data map[string]any) SubjectVerificationResult {
	return SubjectVerificationResult{
		SubjectNotSuitable:    toBool(data["subjectNotSuitable"]),
		VerificationSucceeded: toBool(data["verificationSucceeded"]),
		Score:                 toInt(data["score"]),
	}
}

// UserInfo describes a registered API user.
type UserInfo struct {
	ID       int
	Username string
	Email    string
	Role     string
}

// LoginResult is the record returned by Auth.Login.
type LoginResult struct {
	Token     string
	ExpiresAt *time.Time
	Username  string
	Role      string
}

// RegisterResult is the record returned by Auth.Register.
type RegisterResult struct {
	Message string
	User    *UserInfo
}

// ChangePasswordResult is the record returned by Auth.ChangePassword.
type ChangePasswordResult struct {
	Message string
}

// Int returns a pointer to v, for use in optional request parameters.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v, for use in optional request parameters.
func String(v string) *string {
	return &v
}

// timeLayouts are the timestamp shapes the API is known to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func toTime(v any) *time.Time {
	s := toString(v)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func toInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case json.Number:
		n, _ := val.Int64()
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}
