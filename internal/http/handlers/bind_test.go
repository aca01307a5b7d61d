package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/bankportal/internal/domain/banking"
	"github.com/geocoder89/bankportal/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type bindErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			JSON   string                `json:"json"`
			Field  string                `json:"field"`
			Fields []handlers.FieldError `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func bindRouter[T any]() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()

	r := gin.New()
	r.POST("/bind", func(ctx *gin.Context) {
		var req T
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func postBind(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBindError(t *testing.T, w *httptest.ResponseRecorder) bindErrorResponse {
	t.Helper()

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var resp bindErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
	}
	if resp.Error.Code != "invalid_request" {
		t.Fatalf("unexpected code: %s", resp.Error.Code)
	}
	return resp
}

func TestBindJSON_BankingRulesUseJSONFieldNames(t *testing.T) {
	r := bindRouter[banking.CreateAccountRequest]()

	w := postBind(r, `{"name":"Ann","pin":"12","accountType":"GOLD","initialDeposit":-5}`)
	resp := decodeBindError(t, w)

	wantRules := map[string]string{
		"userId":         "required",
		"pin":            "pin",
		"accountType":    "accounttype",
		"initialDeposit": "gte",
	}

	found := map[string]handlers.FieldError{}
	for _, fieldErr := range resp.Error.Details.Fields {
		found[fieldErr.Field] = fieldErr
	}

	for field, rule := range wantRules {
		fieldErr, ok := found[field]
		if !ok {
			t.Fatalf("missing field error for %q: %+v", field, resp.Error.Details.Fields)
		}
		if fieldErr.Rule != rule {
			t.Fatalf("field %q rule mismatch: got %q want %q", field, fieldErr.Rule, rule)
		}
		if fieldErr.Message == "" {
			t.Fatalf("field %q should include a non-empty message", field)
		}
	}
}

func TestBindJSON_MoneyIsValidatedByValue(t *testing.T) {
	r := bindRouter[banking.TransactionRequest]()

	tests := []struct {
		name string
		body string
		rule string
	}{
		{"missing amount", `{"accountNumber":"AC1"}`, "required"},
		{"negative amount", `{"accountNumber":"AC1","amount":-3}`, "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeBindError(t, postBind(r, tt.body))

			if len(resp.Error.Details.Fields) != 1 {
				t.Fatalf("want one field error, got %+v", resp.Error.Details.Fields)
			}
			if got := resp.Error.Details.Fields[0]; got.Field != "amount" || got.Rule != tt.rule {
				t.Fatalf("got %+v, want amount/%s", got, tt.rule)
			}
		})
	}

	if w := postBind(r, `{"accountNumber":"AC1","amount":"12.50","pin":"1234"}`); w.Code != http.StatusNoContent {
		t.Fatalf("valid request rejected: %d %s", w.Code, w.Body.String())
	}
}

func TestBindJSON_TypeMismatchUsesJSONFieldNames(t *testing.T) {
	r := bindRouter[banking.CreateAccountRequest]()

	w := postBind(r, `{"userId":"ten","name":"Ann","accountType":"SAVINGS"}`)
	resp := decodeBindError(t, w)

	if resp.Error.Details.JSON != "invalid_json_type" {
		t.Fatalf("expected invalid_json_type, got %q", resp.Error.Details.JSON)
	}
	if resp.Error.Details.Field != "userId" {
		t.Fatalf("expected detail field to be userId, got %q", resp.Error.Details.Field)
	}
	if len(resp.Error.Details.Fields) == 0 || resp.Error.Details.Fields[0].Rule != "type" {
		t.Fatalf("expected a type rule in details.fields, got %+v", resp.Error.Details.Fields)
	}
}
