package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func notifyFixture() (*models.Admission, *models.Payment) {
	admission := &models.Admission{
		ID:      42,
		Student: models.Student{Name: "Ravi", Mobile: "9876543210"},
	}
	payment := &models.Payment{ID: 7, AdmissionID: 42, Amount: 1500}
	return admission, payment
}

func TestMaybeNotifyStampsOnSuccess(t *testing.T) {
	sender := &fakeSender{}
	n := &Notifier{enabled: true, senders: []MessageSender{sender}, logger: zap.NewNop()}
	admission, payment := notifyFixture()

	n.MaybeNotify(context.Background(), admission, payment)

	assert.Equal(t, 1, sender.calls)
	assert.NotNil(t, payment.NotifiedAt)
}

func TestMaybeNotifyDisabled(t *testing.T) {
	sender := &fakeSender{}
	n := &Notifier{enabled: false, senders: []MessageSender{sender}, logger: zap.NewNop()}
	admission, payment := notifyFixture()

	n.MaybeNotify(context.Background(), admission, payment)

	assert.Equal(t, 0, sender.calls)
	assert.Nil(t, payment.NotifiedAt)
}

func TestMaybeNotifyAlreadyNotified(t *testing.T) {
	sender := &fakeSender{}
	n := &Notifier{enabled: true, senders: []MessageSender{sender}, logger: zap.NewNop()}
	admission, payment := notifyFixture()
	stamped := time.Now().Add(-time.Hour)
	payment.NotifiedAt = &stamped

	n.MaybeNotify(context.Background(), admission, payment)

	assert.Equal(t, 0, sender.calls)
	assert.Equal(t, stamped, *payment.NotifiedAt)
}

func TestMaybeNotifyAllChannelsFail(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	n := &Notifier{enabled: true, senders: []MessageSender{sender}, logger: zap.NewNop()}
	admission, payment := notifyFixture()

	n.MaybeNotify(context.Background(), admission, payment)

	assert.Equal(t, 1, sender.calls)
	assert.Nil(t, payment.NotifiedAt, "stamp stays unset so a replay retries delivery")
}

func TestMaybeNotifyOneChannelSucceeds(t *testing.T) {
	failing := &fakeSender{err: errors.New("provider down")}
	working := &fakeSender{}
	n := &Notifier{enabled: true, senders: []MessageSender{failing, working}, logger: zap.NewNop()}
	admission, payment := notifyFixture()

	n.MaybeNotify(context.Background(), admission, payment)

	assert.NotNil(t, payment.NotifiedAt)
}

func TestFormatE164(t *testing.T) {
	assert.Equal(t, "+919876543210", formatE164("9876543210", "+91"))
	assert.Equal(t, "+14155550100", formatE164("+14155550100", "+91"))
	assert.Equal(t, "+919876543210", formatE164(" 9876543210 ", "+91"))
}
