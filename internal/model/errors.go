package model

// ValidationError marks a request error caused by bad client input. Its
// message is safe to echo back in the response body; anything else is an
// internal failure and gets a generic reply.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
