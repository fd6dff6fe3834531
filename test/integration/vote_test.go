package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgvote/orgvote/internal/core/domain"
)

func castVote(t *testing.T, app *TestApp, token string, candidateID uuid.UUID) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"candidate_id": candidateID.String()})
	req, err := http.NewRequest("POST", app.Server.URL+"/api/voter/vote", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// TestCastVoteFlow walks the eligibility gate: unverified voter, missing
// profile, successful cast, duplicate cast.
func TestCastVoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const org = "Acme School"
	candidateID := createCandidate(t, app.DB, org, "Alice", true)

	// 1. Unverified voter is refused before anything else
	voterID, token := createVoterAndToken(t, app.DB, org, false)
	resp := castVote(t, app, token, candidateID)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// 2. Verified but no profile yet
	_, err := app.DB.Exec("UPDATE users SET is_verified = TRUE WHERE id = $1", voterID)
	require.NoError(t, err)

	resp = castVote(t, app, token, candidateID)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// 3. Complete the profile through the API, then cast
	profileBody, _ := json.Marshal(map[string]string{
		"full_name":     "Bob Voter",
		"date_of_birth": "1991-06-15",
		"phone":         "555-0101",
		"national_id":   uuid.NewString(),
	})
	req, err := http.NewRequest("POST", app.Server.URL+"/api/voter/profile", bytes.NewReader(profileBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = castVote(t, app, token, candidateID)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.NotEmpty(t, created["ballot_id"])

	// 4. Second cast hits the ledger's uniqueness guard; the conflict
	// body names the candidate who already holds the ballot
	resp = castVote(t, app, token, candidateID)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var conflict struct {
		Error     string            `json:"error"`
		Candidate *domain.Candidate `json:"candidate"`
		CastAt    *time.Time        `json:"cast_at"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conflict))
	resp.Body.Close()
	require.NotNil(t, conflict.Candidate)
	assert.Equal(t, candidateID, conflict.Candidate.ID)
	assert.NotNil(t, conflict.CastAt)

	// 5. Vote status reflects the recorded ballot
	req, err = http.NewRequest("GET", app.Server.URL+"/api/voter/vote-status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status domain.VoteStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.True(t, status.HasVoted)
	require.NotNil(t, status.Candidate)
	assert.Equal(t, candidateID, status.Candidate.ID)
}

func TestCastVoteRejectsIneligibleCandidates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const org = "Acme School"
	voterID, token := createVoterAndToken(t, app.DB, org, true)
	saveVoterProfile(t, app.DB, voterID)

	unverified := createCandidate(t, app.DB, org, "Unverified", false)
	otherOrg := createCandidate(t, app.DB, "Other Org", "Stranger", true)

	for _, candidateID := range []uuid.UUID{unverified, otherOrg, uuid.New()} {
		resp := castVote(t, app, token, candidateID)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		resp.Body.Close()
	}

	// Nothing must have reached the ledger
	var count int
	err := app.DB.QueryRow("SELECT COUNT(*) FROM ballots WHERE voter_id = $1", voterID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// TestConcurrentCasts fires parallel casts for the same voter; the unique
// constraint must let exactly one through.
func TestConcurrentCasts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const org = "Acme School"
	voterID, token := createVoterAndToken(t, app.DB, org, true)
	saveVoterProfile(t, app.DB, voterID)
	candidateID := createCandidate(t, app.DB, org, "Alice", true)

	const attempts = 10
	results := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := castVote(t, app, token, candidateID)
			results[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range results {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Fatalf("unexpected status code %d", code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	var count int
	err := app.DB.QueryRow("SELECT COUNT(*) FROM ballots WHERE voter_id = $1", voterID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestBallotOutlivesCandidate deletes the voted-for candidate and checks
// the ballot stays recorded and counted.
func TestBallotOutlivesCandidate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const org = "Acme School"
	voterID, token := createVoterAndToken(t, app.DB, org, true)
	saveVoterProfile(t, app.DB, voterID)
	candidateID := createCandidate(t, app.DB, org, "Alice", true)

	resp := castVote(t, app, token, candidateID)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	_, err := app.DB.Exec("DELETE FROM candidates WHERE id = $1", candidateID)
	require.NoError(t, err)

	// Ballot row still exists
	var count int
	err = app.DB.QueryRow("SELECT COUNT(*) FROM ballots WHERE voter_id = $1", voterID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Status still says has_voted, without a candidate body
	req, err := http.NewRequest("GET", app.Server.URL+"/api/voter/vote-status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status domain.VoteStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.True(t, status.HasVoted)
	assert.Nil(t, status.Candidate)

	// A second cast is still refused: the ledger row is the guard
	second := createCandidate(t, app.DB, org, "Replacement", true)
	resp = castVote(t, app, token, second)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestVotableCandidatesOrderedByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const org = "Acme School"
	_, token := createVoterAndToken(t, app.DB, org, true)

	createCandidate(t, app.DB, org, "Charlie", true)
	createCandidate(t, app.DB, org, "Alice", true)
	createCandidate(t, app.DB, org, "Bob", true)
	createCandidate(t, app.DB, org, "Hidden", false)
	createCandidate(t, app.DB, "Other Org", "Stranger", true)

	req, err := http.NewRequest("GET", app.Server.URL+"/api/voter/candidates", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var candidates []domain.Candidate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&candidates))
	resp.Body.Close()

	require.Len(t, candidates, 3)
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
}

func TestVoterRoutesRequireVoterRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminID := createUser(t, app.DB, domain.RoleAdmin, "Acme School", true)
	token := signToken(t, adminID, domain.RoleAdmin, "Acme School")

	req, err := http.NewRequest("GET", app.Server.URL+"/api/voter/vote-status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	req, err = http.NewRequest("GET", fmt.Sprintf("%s/api/voter/vote-status", app.Server.URL), nil)
	require.NoError(t, err)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
