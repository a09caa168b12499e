package promo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykravets/promoaudit/internal/domain"
)

func newTestClient(t *testing.T, baseURL string, pageSize int) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:    baseURL,
		Username:   "tester",
		Password:   "secret",
		TerminalID: 1541,
		PageSize:   pageSize,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestLoginSetsSessionCookie(t *testing.T) {
	var sawCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tester", req.Username)
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/discountRule/list", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil && c.Value == "abc" {
			sawCookie = true
		}
		json.NewEncoder(w).Encode(listRulesResponse{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	require.NoError(t, c.Login(context.Background()))

	_, _, err := c.ListRulesPage(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, sawCookie, "session cookie should be replayed on later calls")
}

func TestLoginFailureIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	err := c.Login(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestFetchAllRulesPaginates(t *testing.T) {
	const total = 5
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req listRulesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var page []domain.CatalogRule
		for i := req.Offset; i < total && i < req.Offset+req.Count; i++ {
			page = append(page, domain.CatalogRule{Name: fmt.Sprintf("Rule_%d", i)})
		}
		json.NewEncoder(w).Encode(listRulesResponse{Data: page, Count: total})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	rules := c.FetchAllRules(context.Background())

	require.Len(t, rules, total)
	assert.Equal(t, "Rule_0", rules[0].Name)
	assert.Equal(t, "Rule_4", rules[4].Name)
}

func TestFetchAllRulesTerminatesOnInconsistentTotal(t *testing.T) {
	// The engine claims 1000 rules but only ever returns one page.
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req listRulesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := listRulesResponse{Count: 1000}
		if req.Offset == 0 {
			resp.Data = []domain.CatalogRule{{Name: "only"}}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	rules := c.FetchAllRules(context.Background())

	assert.Len(t, rules, 1)
	assert.Equal(t, 2, calls)
}

func TestFetchAllRulesDegradesOnPageFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(listRulesResponse{
			Data:  []domain.CatalogRule{{Name: "a"}, {Name: "b"}},
			Count: 10,
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	rules := c.FetchAllRules(context.Background())

	// Partial results, not an aborted run.
	assert.Len(t, rules, 2)
}

func TestTestDiscountSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req testerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, "ABC123", req.Items[0].ExtSKU.ID)
		assert.Equal(t, "100", req.Items[0].Price)
		assert.Equal(t, 1000.0, req.Items[0].Amount)
		assert.Equal(t, 1541, req.TerminalID)

		fmt.Fprint(w, `{"data":{"totalDiscountAmount":50.5},"error":""}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "ABC123", 10, 100)

	assert.True(t, out.Success)
	assert.Equal(t, 50.5, out.ActualDiscount)
	assert.Empty(t, out.ErrorMessage)
}

func TestTestDiscountCoercesStringAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"totalDiscountAmount":"12.34"}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "P1", 1, 1)

	assert.True(t, out.Success)
	assert.Equal(t, 12.34, out.ActualDiscount)
}

func TestTestDiscountMissingAmountDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "P1", 1, 1)

	assert.True(t, out.Success)
	assert.Equal(t, 0.0, out.ActualDiscount)
}

func TestTestDiscountRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"error":"no terminal configured"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "P1", 1, 1)

	assert.False(t, out.Success)
	assert.Equal(t, "no terminal configured", out.ErrorMessage)
}

func TestTestDiscountNullDataWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "P1", 1, 1)

	assert.False(t, out.Success)
	assert.Equal(t, "tester returned null data", out.ErrorMessage)
}

func TestTestDiscountUnknownProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `ERROR: key (ext_sku_group_id)=(42) is not present in table "ext_sku_group"`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "NOPE", 1, 1)

	assert.False(t, out.Success)
	assert.Equal(t, "product not recognized by remote system", out.ErrorMessage)
}

func TestTestDiscountTruncatesLongErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		for i := 0; i < 100; i++ {
			fmt.Fprint(w, "0123456789")
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "P1", 1, 1)

	assert.False(t, out.Success)
	assert.LessOrEqual(t, len(out.ErrorMessage), maxErrLen)
}

func TestTestDiscountTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(t, srv.URL, 100)
	out := c.TestDiscount(context.Background(), "P1", 1, 1)

	assert.False(t, out.Success)
	assert.NotEmpty(t, out.ErrorMessage)
}

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{nil, 0, true},
		{float64(7.5), 7.5, true},
		{"3.25", 3.25, true},
		{json.Number("9"), 9, true},
		{"not-a-number", 0, false},
		{map[string]any{}, 0, false},
	}
	for _, tc := range cases {
		got, ok := coerceFloat(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}
