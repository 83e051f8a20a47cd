package schema

import (
	"encoding/json"
	"fmt"

	"github.com/misteriaud/passeri/model"
)

// CreateBridgeRequestParams asks the backend to bind a new bridge.
type CreateBridgeRequestParams struct {
	Kind    model.Kind `json:"kind" yaml:"kind"`
	Address string     `json:"address" yaml:"address"`
	// Label names the MIDI port; may be empty.
	Label string `json:"label" yaml:"label"`
}

// UnmarshalJSON requires kind: a missing kind must not default to sender.
func (p *CreateBridgeRequestParams) UnmarshalJSON(data []byte) error {
	type params CreateBridgeRequestParams
	decoded := struct {
		*params
		Kind *model.Kind `json:"kind"`
	}{params: (*params)(p)}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Kind == nil {
		return errMissingKind
	}
	p.Kind = *decoded.Kind
	return nil
}

// CreateBridgeResult carries the backend assigned identifier and the address
// the backend actually bound. On the wire it is the pair [id, address].
type CreateBridgeResult struct {
	Id      string
	Address string
}

func (r CreateBridgeResult) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Id, r.Address})
}

func (r *CreateBridgeResult) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode create result: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("failed to decode create result: expected [id, address], got %d elements", len(pair))
	}
	r.Id, r.Address = pair[0], pair[1]
	return nil
}

// RemoveBridgeRequestParams asks the backend to tear down a bridge.
type RemoveBridgeRequestParams struct {
	Kind model.Kind `json:"kind" yaml:"kind"`
	Id   string     `json:"id" yaml:"id"`
}

// UnmarshalJSON requires kind, as for CreateBridgeRequestParams.
func (p *RemoveBridgeRequestParams) UnmarshalJSON(data []byte) error {
	type params RemoveBridgeRequestParams
	decoded := struct {
		*params
		Kind *model.Kind `json:"kind"`
	}{params: (*params)(p)}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Kind == nil {
		return errMissingKind
	}
	p.Kind = *decoded.Kind
	return nil
}

var errMissingKind = &model.ValidationError{Field: "kind", Reason: "missing"}

// ActivateRequestParams asks the backend to start a bridge: listening for a
// sender, receiving for a receiver.
type ActivateRequestParams struct {
	Id string `json:"id" yaml:"id"`
}

// PingRequestParams is the (empty) ping payload.
type PingRequestParams struct{}

// Ack is the empty success result.
type Ack struct{}

// CancelledNotificationParams tells the backend to abandon an in-flight request.
type CancelledNotificationParams struct {
	RequestId int    `json:"requestId"`
	Reason    string `json:"reason,omitempty"`
}

// LoggingMessageNotificationParams carries a backend log record to the client.
type LoggingMessageNotificationParams struct {
	Level  LoggingLevel `json:"level"`
	Logger string       `json:"logger,omitempty"`
	Data   interface{}  `json:"data"`
}
