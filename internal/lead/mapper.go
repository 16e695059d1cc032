package lead

import (
	"time"

	"leadrelay/internal/constants"
)

// ToDeliveryRecord flattens an Analysis into the record shape the
// delivery sink accepts. Fields the model left absent are omitted,
// never emitted as null or empty. Two derived fields are injected
// from the call's dynamic variables: dateTime falls back to the
// current wall-clock time, phoneNumber to "NA". The clock is injected
// so the fallback path is testable; pass nil for time.Now.
func ToDeliveryRecord(a Analysis, dynamicVariables map[string]string, now func() time.Time) map[string]string {
	if now == nil {
		now = time.Now
	}

	record := make(map[string]string)
	for _, f := range a.fields() {
		if f.value != nil {
			record[f.name] = *f.value
		}
	}

	if t, ok := dynamicVariables[constants.DynamicVarCallTime]; ok {
		record["dateTime"] = t
	} else {
		record["dateTime"] = now().Format(constants.DateTimeLayout)
	}

	if callerID, ok := dynamicVariables[constants.DynamicVarCallerID]; ok {
		record["phoneNumber"] = callerID
	} else {
		record["phoneNumber"] = constants.FallbackPhoneNumber
	}

	return record
}
