package validation

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/deposit-validator/internal/service"
	"github.com/carson-networks/deposit-validator/internal/storage"
)

type mockRunGetter struct {
	mock.Mock
}

func (m *mockRunGetter) GetRun(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	args := m.Called(ctx, id)
	run, _ := args.Get(0).(*storage.Run)
	return run, args.Error(1)
}

func newGetTestAPI(t *testing.T, svc runGetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetRunHandler(svc).Register(api)
	return api
}

func TestHTTP_GetRun_Complete(t *testing.T) {
	run := completedRun()

	mockSvc := new(mockRunGetter)
	mockSvc.On("GetRun", mock.Anything, run.ID).Return(run, nil)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/validation/" + run.ID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetRunResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, run.ID.String(), body.Run.ID)
	assert.NotNil(t, body.Run.Summary)
	assert.Len(t, body.Run.Records, 1)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetRun_Failed(t *testing.T) {
	run := completedRun()
	run.State = storage.RunStateFailed
	run.Report = nil
	run.Error = "reference data unavailable"

	mockSvc := new(mockRunGetter)
	mockSvc.On("GetRun", mock.Anything, run.ID).Return(run, nil)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/validation/" + run.ID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetRunResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(storage.RunStateFailed), body.Run.State)
	assert.Equal(t, "reference data unavailable", body.Run.Error)
	assert.Empty(t, body.Run.Records)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetRun_InvalidID(t *testing.T) {
	mockSvc := new(mockRunGetter)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/validation/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "GetRun")
}

func TestHTTP_GetRun_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockRunGetter)
	mockSvc.On("GetRun", mock.Anything, id).Return(nil, service.ErrRunNotFound)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/validation/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}
