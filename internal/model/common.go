package model

// EmptyRequest is the payload of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// DeletedResponse is returned by every DELETE endpoint.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
