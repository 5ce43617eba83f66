package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/rwangliu/library-lending-server/internal/api/testutils"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentBorrowLastCopy fires many concurrent borrows at a book with a
// single copy. Exactly one may win; the rest must fail with
// NO_COPIES_AVAILABLE and the available count must end at zero, never
// negative.
func TestConcurrentBorrowLastCopy(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	const numBorrowers = 8

	book := testCtx.CreateTestBook(t, "Contested", "isbn-contested", "Fiction", 1)

	tokens := make([]string, numBorrowers)
	for i := range tokens {
		_, tokens[i] = testCtx.CreateTestUser(t,
			fmt.Sprintf("borrower%d@test.local", i), fmt.Sprintf("Borrower %d", i), models.RoleMember)
	}

	type result struct {
		status int
		code   string
	}
	results := make(chan result, numBorrowers)

	var wg sync.WaitGroup
	for i := 0; i < numBorrowers; i++ {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()

			w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/borrow",
				models.BorrowRequest{BookID: book.ID}, testutils.AuthHeaders(token))

			var errResp models.ErrorResponse
			_ = json.Unmarshal(w.Body.Bytes(), &errResp)
			results <- result{status: w.Code, code: errResp.Code}
		}(tokens[i])
	}

	wg.Wait()
	close(results)

	successes, noCopies, other := 0, 0, 0
	for res := range results {
		switch {
		case res.status == http.StatusCreated:
			successes++
		case res.code == "NO_COPIES_AVAILABLE":
			noCopies++
		default:
			other++
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent borrow may win")
	assert.Equal(t, numBorrowers-1, noCopies, "all losers must see NO_COPIES_AVAILABLE")
	assert.Zero(t, other, "no other failure modes expected")

	reloaded := testCtx.GetBook(t, book.ID)
	assert.Equal(t, 0, reloaded.AvailableCopies)
	assert.Equal(t, 1, reloaded.TotalCopies)

	var activeRecords int
	err := testCtx.DB.Get(&activeRecords,
		`SELECT COUNT(*) FROM borrow_records WHERE book_id = $1 AND status = 'borrowed'`, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, activeRecords)
}

// TestConcurrentDuplicateBorrow has the same user race itself for the same
// title; the partial unique index must let exactly one attempt through.
func TestConcurrentDuplicateBorrow(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	const attempts = 6

	book := testCtx.CreateTestBook(t, "Self Race", "isbn-self-race", "Fiction", attempts)

	results := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/borrow",
				models.BorrowRequest{BookID: book.ID}, testutils.AuthHeaders(testCtx.MemberJWT))
			results <- w.Code
		}()
	}

	wg.Wait()
	close(results)

	successes := 0
	for code := range results {
		if code == http.StatusCreated {
			successes++
		}
	}

	assert.Equal(t, 1, successes, "one active loan per (user, book)")
	assert.Equal(t, attempts-1, testCtx.GetBook(t, book.ID).AvailableCopies,
		"rejected duplicates must not consume copies")
}
