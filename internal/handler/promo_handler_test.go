package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"remitdesk/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPromoService is a mock implementation of PromoService.
type MockPromoService struct {
	mock.Mock
}

func (m *MockPromoService) Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidateResponse), args.Error(1)
}

func (m *MockPromoService) Apply(ctx context.Context, req *model.ApplyRequest) (*model.ApplyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplyResponse), args.Error(1)
}

func performRequest(t *testing.T, h http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestPromoHandler_Validate(t *testing.T) {
	logger := zerolog.Nop()

	okResponse := &model.ValidateResponse{
		Valid:           true,
		AppliedDiscount: 1.00,
		DisplayText:     "20% off fees (GBP 1.00 saved)",
		Promo:           &model.PromoCode{Code: "SAVE20", Kind: model.KindPercentage, Value: 20},
	}

	tests := []struct {
		name           string
		method         string
		requestBody    interface{}
		mockReturn     *model.ValidateResponse
		mockError      error
		expectedStatus int
		expectedError  string
		expectService  bool
	}{
		{
			name:   "Success",
			method: http.MethodPost,
			requestBody: &model.ValidateRequest{
				Code: "SAVE20", Amount: 150, Currency: "GBP",
				SourceCurrency: "GBP", DestCurrency: "NGN", PaymentMethod: "bank_transfer",
			},
			mockReturn:     okResponse,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:   "Unknown code",
			method: http.MethodPost,
			requestBody: &model.ValidateRequest{
				Code: "GHOST", Amount: 150,
			},
			mockError:      model.ErrInvalidPromoCode,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid promo code",
			expectService:  true,
		},
		{
			name:   "Below minimum",
			method: http.MethodPost,
			requestBody: &model.ValidateRequest{
				Code: "WELCOME", Amount: 40,
			},
			mockError:      model.ErrBelowMinimum,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Transaction amount is below the minimum required for this promo code",
			expectService:  true,
		},
		{
			name:           "Missing code",
			method:         http.MethodPost,
			requestBody:    &model.ValidateRequest{Amount: 150},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "code is required",
			expectService:  false,
		},
		{
			name:           "Non-positive amount",
			method:         http.MethodPost,
			requestBody:    &model.ValidateRequest{Code: "SAVE20"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "amount must be greater than zero",
			expectService:  false,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
			expectService:  false,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
			expectService:  false,
		},
		{
			name:   "Internal error",
			method: http.MethodPost,
			requestBody: &model.ValidateRequest{
				Code: "SAVE20", Amount: 150,
			},
			mockError:      errors.New("store unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPromoService)
			if tt.expectService {
				if tt.mockError != nil {
					mockService.On("Validate", mock.Anything, mock.Anything).Return(nil, tt.mockError)
				} else {
					mockService.On("Validate", mock.Anything, mock.Anything).Return(tt.mockReturn, nil)
				}
			}

			h := NewPromoHandler(mockService, logger)
			rec := performRequest(t, h.Validate, tt.method, "/api/promocodes/validate", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp model.ValidateResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.True(t, resp.Valid)
				assert.Equal(t, 1.00, resp.AppliedDiscount)
				assert.Equal(t, "20% off fees (GBP 1.00 saved)", resp.DisplayText)
			} else if tt.expectedError != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestPromoHandler_Apply(t *testing.T) {
	logger := zerolog.Nop()

	okResponse := &model.ApplyResponse{
		Success: true,
		Message: "Promo code WELCOME applied to transaction txn-123",
	}

	tests := []struct {
		name           string
		method         string
		requestBody    interface{}
		mockReturn     *model.ApplyResponse
		mockError      error
		expectedStatus int
		expectedError  string
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodPost,
			requestBody:    &model.ApplyRequest{Code: "WELCOME", TransactionID: "txn-123"},
			mockReturn:     okResponse,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown code returns 404",
			method:         http.MethodPost,
			requestBody:    &model.ApplyRequest{Code: "GHOST"},
			mockError:      model.ErrPromoNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Promo code not found",
			expectService:  true,
		},
		{
			name:           "Missing code",
			method:         http.MethodPost,
			requestBody:    &model.ApplyRequest{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "code is required",
			expectService:  false,
		},
		{
			name:           "Invalid JSON",
			method:         http.MethodPost,
			requestBody:    "{{{",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
			expectService:  false,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPromoService)
			if tt.expectService {
				if tt.mockError != nil {
					mockService.On("Apply", mock.Anything, mock.Anything).Return(nil, tt.mockError)
				} else {
					mockService.On("Apply", mock.Anything, mock.Anything).Return(tt.mockReturn, nil)
				}
			}

			h := NewPromoHandler(mockService, logger)
			rec := performRequest(t, h.Apply, tt.method, "/api/promocodes/apply", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp model.ApplyResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.Contains(t, resp.Message, "WELCOME")
			} else if tt.expectedError != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}

			mockService.AssertExpectations(t)
		})
	}
}
