package scheduling

import (
	"testing"
	"time"

	"agendly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitionTable(t *testing.T) {
	l := AppointmentLifecycle{}

	tests := []struct {
		from, to models.AppointmentStatus
		want     bool
	}{
		{models.StatusScheduled, models.StatusConfirmed, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusScheduled, models.StatusNoShow, true},
		{models.StatusScheduled, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusNoShow, true},
		{models.StatusConfirmed, models.StatusScheduled, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusScheduled, false},
		{models.StatusNoShow, models.StatusConfirmed, false},
		{models.StatusScheduled, models.StatusScheduled, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, l.CanTransitionStatus(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentTransitionTable(t *testing.T) {
	l := AppointmentLifecycle{}

	tests := []struct {
		from, to models.PaymentStatus
		want     bool
	}{
		{models.PaymentPending, models.PaymentPaid, true},
		{models.PaymentPending, models.PaymentPartiallyPaid, true},
		{models.PaymentPending, models.PaymentRefunded, false},
		{models.PaymentPartiallyPaid, models.PaymentPaid, true},
		{models.PaymentPartiallyPaid, models.PaymentRefunded, true},
		{models.PaymentPaid, models.PaymentRefunded, true},
		{models.PaymentPaid, models.PaymentPending, false},
		{models.PaymentRefunded, models.PaymentPaid, false},
		{models.PaymentRefunded, models.PaymentPending, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, l.CanTransitionPayment(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApplyStatusCancellation(t *testing.T) {
	l := AppointmentLifecycle{}
	now := time.Now()
	appt := &models.Appointment{Status: models.StatusScheduled, EndTime: now.Add(2 * time.Hour)}

	t.Run("requires a reason", func(t *testing.T) {
		_, err := l.ApplyStatus(appt, models.StatusCancelled, "", 0, now)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		_, err := l.ApplyStatus(appt, models.StatusCancelled, "client request", -5, now)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("records reason and fee", func(t *testing.T) {
		fields, err := l.ApplyStatus(appt, models.StatusCancelled, "client request", 10, now)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, fields["status"])
		assert.Equal(t, "client request", fields["cancellation_reason"])
		assert.Equal(t, 10.0, fields["cancellation_fee"])
	})

	t.Run("zero fee is allowed", func(t *testing.T) {
		fields, err := l.ApplyStatus(appt, models.StatusCancelled, "client request", 0, now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, fields["cancellation_fee"])
	})
}

func TestApplyStatusCompletionTiming(t *testing.T) {
	l := AppointmentLifecycle{}
	now := time.Now()

	t.Run("cannot complete before the end time", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusConfirmed, EndTime: now.Add(time.Hour)}
		_, err := l.ApplyStatus(appt, models.StatusCompleted, "", 0, now)
		var tErr *InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "status", tErr.Axis)
	})

	t.Run("completes once ended", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusConfirmed, EndTime: now.Add(-time.Minute)}
		fields, err := l.ApplyStatus(appt, models.StatusCompleted, "", 0, now)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, fields["status"])
	})

	t.Run("no-show also waits for the end time", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusScheduled, EndTime: now.Add(time.Hour)}
		_, err := l.ApplyStatus(appt, models.StatusNoShow, "", 0, now)
		var tErr *InvalidTransitionError
		assert.ErrorAs(t, err, &tErr)
	})
}

func TestApplyStatusTerminal(t *testing.T) {
	l := AppointmentLifecycle{}
	now := time.Now()

	for _, status := range []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow} {
		appt := &models.Appointment{Status: status, EndTime: now.Add(-time.Hour)}
		_, err := l.ApplyStatus(appt, models.StatusConfirmed, "", 0, now)
		var tErr *InvalidTransitionError
		assert.ErrorAs(t, err, &tErr, "from %s", status)
	}
}

func TestApplyPayment(t *testing.T) {
	l := AppointmentLifecycle{}

	t.Run("pending to paid with method", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusConfirmed, PaymentStatus: models.PaymentPending}
		fields, err := l.ApplyPayment(appt, models.PaymentPaid, "card")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, fields["payment_status"])
		assert.Equal(t, "card", fields["payment_method"])
	})

	t.Run("method required when leaving pending", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusConfirmed, PaymentStatus: models.PaymentPending}
		_, err := l.ApplyPayment(appt, models.PaymentPaid, "")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("recorded method carries over", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusConfirmed, PaymentStatus: models.PaymentPartiallyPaid, PaymentMethod: "card"}
		fields, err := l.ApplyPayment(appt, models.PaymentPaid, "")
		require.NoError(t, err)
		_, overwritten := fields["payment_method"]
		assert.False(t, overwritten)
	})

	t.Run("refund needs a completed or cancelled booking", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusConfirmed, PaymentStatus: models.PaymentPaid, PaymentMethod: "card"}
		_, err := l.ApplyPayment(appt, models.PaymentRefunded, "")
		var tErr *InvalidTransitionError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "payment", tErr.Axis)
	})

	t.Run("refund after cancellation", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusCancelled, PaymentStatus: models.PaymentPaid, PaymentMethod: "card"}
		fields, err := l.ApplyPayment(appt, models.PaymentRefunded, "")
		require.NoError(t, err)
		assert.Equal(t, models.PaymentRefunded, fields["payment_status"])
	})

	t.Run("refund after completion", func(t *testing.T) {
		appt := &models.Appointment{Status: models.StatusCompleted, PaymentStatus: models.PaymentPaid, PaymentMethod: "card"}
		_, err := l.ApplyPayment(appt, models.PaymentRefunded, "")
		require.NoError(t, err)
	})
}
