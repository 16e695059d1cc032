package lead

// Analysis is the structured extraction result for one call. Every
// field is optional; a nil pointer means the model found nothing for
// that field.
type Analysis struct {
	Name             *string `json:"name"`
	Company          *string `json:"company"`
	Email            *string `json:"email"`
	ContactReason    *string `json:"contactReason"`
	Interest         *string `json:"interest"`
	ProjectOrService *string `json:"projectOrService"`
	InterestLevel    *string `json:"interestLevel"`
	CurrentStatus    *string `json:"currentStatus"`
	NextAction       *string `json:"nextAction"`
	ShortSummary     *string `json:"shortSummary"`
}

// IsEmpty reports whether the model returned no field at all.
func (a Analysis) IsEmpty() bool {
	for _, v := range a.fields() {
		if v.value != nil {
			return false
		}
	}
	return true
}

type field struct {
	name  string
	value *string
}

func (a Analysis) fields() []field {
	return []field{
		{"name", a.Name},
		{"company", a.Company},
		{"email", a.Email},
		{"contactReason", a.ContactReason},
		{"interest", a.Interest},
		{"projectOrService", a.ProjectOrService},
		{"interestLevel", a.InterestLevel},
		{"currentStatus", a.CurrentStatus},
		{"nextAction", a.NextAction},
		{"shortSummary", a.ShortSummary},
	}
}

// FieldNames returns the schema field names in declaration order.
func FieldNames() []string {
	names := make([]string, 0, 10)
	for _, f := range (Analysis{}).fields() {
		names = append(names, f.name)
	}
	return names
}
