package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveRequest_DurationDaysInclusive(t *testing.T) {
	r := LeaveRequest{
		StartDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 6, r.DurationDays())

	r.EndDate = r.StartDate
	assert.Equal(t, 1, r.DurationDays())
}

func TestCanonicalStatusMapping(t *testing.T) {
	assert.Equal(t, CanonicalPending, LeavePending.Canonical())
	assert.Equal(t, CanonicalApproved, LeaveApproved.Canonical())
	assert.Equal(t, CanonicalRejected, LeaveRejected.Canonical())

	assert.Equal(t, CanonicalInReview, DocumentInProgress.Canonical())
	assert.Equal(t, CanonicalApproved, DocumentCompleted.Canonical())
	assert.Equal(t, CanonicalCancelled, DocumentCancelled.Canonical())

	assert.Equal(t, CanonicalInReview, GenericInReview.Canonical())
	assert.Equal(t, CanonicalApproved, GenericCompleted.Canonical())
	assert.Equal(t, CanonicalApproved, GenericApproved.Canonical())
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, LeavePending.Terminal())
	assert.True(t, LeaveApproved.Terminal())
	assert.True(t, LeaveCancelled.Terminal())

	assert.False(t, DocumentInProgress.Terminal())
	assert.True(t, DocumentCompleted.Terminal())

	assert.False(t, GenericInReview.Terminal())
	for _, s := range []GenericStatus{GenericApproved, GenericRejected, GenericCompleted, GenericCancelled} {
		assert.True(t, s.Terminal(), s)
	}
}

func TestGenericRequest_NextApprover(t *testing.T) {
	r := GenericRequest{WorkflowRoute: StringList{"manager", "hr", "finance"}, CurrentApprover: "manager"}
	next, step := r.NextApprover()
	assert.Equal(t, "hr", next)
	assert.Equal(t, 1, step)

	r.CurrentStep = 2
	next, step = r.NextApprover()
	assert.Equal(t, "", next)
	assert.Equal(t, -1, step)

	empty := GenericRequest{}
	_, step = empty.NextApprover()
	assert.Equal(t, -1, step)
}

func TestGenericRequest_NextApproverRepeatedRole(t *testing.T) {
	r := GenericRequest{WorkflowRoute: StringList{"manager", "hr", "manager"}, CurrentApprover: "manager"}

	next, step := r.NextApprover()
	assert.Equal(t, "hr", next)
	assert.Equal(t, 1, step)

	r.CurrentStep, r.CurrentApprover = 2, "manager"
	_, step = r.NextApprover()
	assert.Equal(t, -1, step, "the last manager step ends the route")
}

func TestParseRequestKind(t *testing.T) {
	k, err := ParseRequestKind("document")
	require.NoError(t, err)
	assert.Equal(t, KindDocument, k)

	_, err = ParseRequestKind("payroll")
	assert.Error(t, err)

	assert.Less(t, KindLeave.Priority(), KindDocument.Priority())
	assert.Less(t, KindDocument.Priority(), KindGeneric.Priority())
}

func TestJSONColumns_ScanValue(t *testing.T) {
	m := JSONMap{"device": "laptop", "qty": float64(2)}
	v, err := m.Value()
	require.NoError(t, err)

	var back JSONMap
	require.NoError(t, back.Scan([]byte(v.(string))))
	assert.Equal(t, m, back)

	var l StringList
	require.NoError(t, l.Scan(`["manager","hr"]`))
	assert.Equal(t, StringList{"manager", "hr"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
}
