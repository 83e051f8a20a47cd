package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misteriaud/passeri/model"
)

func TestCreateBridgeResult_Wire(t *testing.T) {
	result := CreateBridgeResult{Id: "a1b2c3d4-0000-0000-0000-000000000001", Address: "10.0.0.5:5004"}
	data, err := json.Marshal(&result)
	require.NoError(t, err)
	assert.JSONEq(t, `["a1b2c3d4-0000-0000-0000-000000000001","10.0.0.5:5004"]`, string(data))

	var decoded CreateBridgeResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)

	assert.Error(t, json.Unmarshal([]byte(`["only-one"]`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x"}`), &decoded))
}

func TestCreateBridgeRequestParams_Wire(t *testing.T) {
	params := CreateBridgeRequestParams{Kind: model.Receiver, Address: "10.0.0.5:5004"}
	data, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"receiver","address":"10.0.0.5:5004","label":""}`, string(data))

	var legacy CreateBridgeRequestParams
	require.NoError(t, json.Unmarshal([]byte(`{"kind":0,"address":"127.0.0.1:1","label":"port"}`), &legacy))
	assert.Equal(t, model.Sender, legacy.Kind)
	assert.Equal(t, "port", legacy.Label)
}

func TestBridgeRequestParams_KindRequired(t *testing.T) {
	var create CreateBridgeRequestParams
	err := json.Unmarshal([]byte(`{"address":"10.0.0.5:5004","label":"port"}`), &create)
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "kind", validationErr.Field)

	var remove RemoveBridgeRequestParams
	assert.Error(t, json.Unmarshal([]byte(`{"kind":null,"id":"a1b2c3d4-0000-0000-0000-000000000001"}`), &remove))

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"receiver","id":"a1b2c3d4-0000-0000-0000-000000000001"}`), &remove))
	assert.Equal(t, model.Receiver, remove.Kind)
	assert.Equal(t, "a1b2c3d4-0000-0000-0000-000000000001", remove.Id)
}
