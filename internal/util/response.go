package util

// Envelope is the JSON body shape shared by every endpoint: payload under
// "data", human-readable status under "message".
type Envelope map[string]any

func Success(data any, message string) Envelope {
	if data == nil {
		data = []any{}
	}
	return Envelope{"data": data, "message": message}
}

// Fail mirrors Success with an empty data payload so clients always see the
// same body shape on errors.
func Fail(message string) Envelope {
	return Envelope{"data": []any{}, "message": message}
}

// ValidationFail reports field-level input errors as a 422 body:
// {"message": ..., "errors": {field: [messages]}}.
func ValidationFail(errs map[string][]string) Envelope {
	message := "The given data was invalid."
	for _, msgs := range errs {
		if len(msgs) > 0 {
			message = msgs[0]
			break
		}
	}
	return Envelope{"message": message, "errors": errs}
}
