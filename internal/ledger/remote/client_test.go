package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/get-transactions" {
			t.Errorf("path = %s, want /get-transactions", r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "alice" {
			t.Errorf("userId = %q, want alice", got)
		}
		// Responses carry the capitalized "TransactionID" key.
		io.WriteString(w, `{"transactions":[
			{"userId":"alice","TransactionID":"t1","amount":"12.50","category":"Food","type":"expense","date":"2024-01-05","description":"lunch"},
			{"userId":"alice","TransactionID":"t2","amount":"1000","category":"Salary","type":"income","date":"2024-01-01","description":""}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	items, err := c.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	want := core.Transaction{
		UserID:        "alice",
		TransactionID: "t1",
		Amount:        "12.50",
		Category:      "Food",
		Type:          core.Expense,
		Date:          "2024-01-05",
		Description:   "lunch",
	}
	if items[0] != want {
		t.Errorf("items[0] = %+v, want %+v", items[0], want)
	}
}

func TestList_MissingTransactionsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len(items) = %d, want empty set", len(items))
	}
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"backend unavailable"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).List(context.Background(), "alice")
	var apiErr *ledger.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("List error = %v, want *ledger.APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if apiErr.Error() != "backend unavailable" {
		t.Errorf("Error() = %q, want the server message", apiErr.Error())
	}
}

func TestList_ServerErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).List(context.Background(), "alice")
	var apiErr *ledger.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("List error = %v, want *ledger.APIError", err)
	}
	if apiErr.Error() != "ledger request failed with status 502" {
		t.Errorf("Error() = %q, want the status fallback message", apiErr.Error())
	}
}

func TestCreate_SendsLowercaseIDKey(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/add-transaction" {
			t.Errorf("path = %s, want /add-transaction", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	submitted := core.Transaction{
		UserID:        "alice",
		TransactionID: "t1",
		Amount:        "12.50",
		Category:      "Food",
		Type:          core.Expense,
		Date:          "2024-01-05",
	}
	created, err := NewClient(srv.URL).Create(context.Background(), submitted)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Request bodies use "transactionId", unlike responses.
	if _, ok := gotBody["transactionId"]; !ok {
		t.Error("request body missing transactionId key")
	}
	if _, ok := gotBody["TransactionID"]; ok {
		t.Error("request body must not use the response-style TransactionID key")
	}

	// An acknowledgement body is not a record; the submitted values stand in.
	if created != submitted {
		t.Errorf("created = %+v, want submitted record back", created)
	}
}

func TestCreate_DecodesReturnedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"userId":"alice","TransactionID":"server-id","amount":"12.50","category":"Food","type":"expense","date":"2024-01-05","description":""}`)
	}))
	defer srv.Close()

	created, err := NewClient(srv.URL).Create(context.Background(), core.Transaction{
		UserID: "alice", TransactionID: "t1", Amount: "12.50",
		Category: "Food", Type: core.Expense, Date: "2024-01-05",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.TransactionID != "server-id" {
		t.Errorf("TransactionID = %q, want the server-assigned id", created.TransactionID)
	}
}

func TestUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/update-transaction" {
			t.Errorf("path = %s, want /update-transaction", r.URL.Path)
		}
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Update(context.Background(), core.Transaction{
		UserID: "alice", TransactionID: "t1", Amount: "25",
		Category: "Food", Type: core.Expense, Date: "2024-01-05",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/delete-transaction" {
			t.Errorf("path = %s, want /delete-transaction", r.URL.Path)
		}
		var body struct {
			UserID        string `json:"userId"`
			TransactionID string `json:"transactionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if body.UserID != "alice" || body.TransactionID != "t1" {
			t.Errorf("body = %+v", body)
		}
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Delete(context.Background(), "alice", "t1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"transaction not found"}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Delete(context.Background(), "alice", "missing")
	var apiErr *ledger.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Delete error = %v, want *ledger.APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}

func TestTransportError(t *testing.T) {
	// Point at a closed server so the request itself fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).List(context.Background(), "alice")
	if err == nil {
		t.Fatal("List against a closed server should fail")
	}
	var apiErr *ledger.APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failures must not be APIErrors")
	}
}
