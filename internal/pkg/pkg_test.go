package pkg

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuthorityRoundTrip(t *testing.T) {
	a, err := NewTokenAuthority([]byte("secret"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, a.TTL())

	tok, exp, err := a.Issue("admin@example.org")
	require.NoError(t, err)
	claims, err := a.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", claims.Subject)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenAuthorityErrors(t *testing.T) {
	now := time.Now()
	a, err := NewTokenAuthority([]byte("secret"), time.Minute)
	require.NoError(t, err)
	a.WithClock(func() time.Time { return now })
	tok, _, err := a.Issue("admin@example.org")
	require.NoError(t, err)

	a.WithClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = a.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)

	other, err := NewTokenAuthority([]byte("other"), time.Minute)
	require.NoError(t, err)
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = a.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewTokenAuthority(nil, time.Minute)
	assert.Error(t, err)
}

func TestIdentifierFormats(t *testing.T) {
	id, err := AdminMembershipID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^MEM\d{4}$`), id)

	id, err = ApplicationMembershipID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^MEM[0-9A-F]{8}$`), id)

	ref, err := ComplaintReference(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^MMN-CMP-20240309-[0-9A-F]{4}$`), ref)
}

func TestValidators(t *testing.T) {
	assert.True(t, IsPhone("9876543210"))
	assert.False(t, IsPhone("98765"))
	assert.False(t, IsPhone("98765432101"))
	assert.True(t, IsAadhaar("123412341234"))
	assert.False(t, IsAadhaar("1234-1234-1234"))
	assert.True(t, IsLetters("Ravi Kumar"))
	assert.False(t, IsLetters("R2D2"))

	d, err := ParseDMY("31-12-1990")
	require.NoError(t, err)
	assert.Equal(t, time.December, d.Month())
	_, err = ParseDMY("1990-12-31")
	assert.Error(t, err)
}

func TestErrorTypes(t *testing.T) {
	err := NewValidationError("phone", "must be %d digits", 10)
	assert.Equal(t, "phone: must be 10 digits", err.Error())

	se := &StorageError{Op: "put", Key: "k", Err: errors.New("boom")}
	assert.ErrorIs(t, se, ErrStorage)
	assert.True(t, strings.Contains(se.Error(), "boom"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveTransition("donation", "verify", "ok")
	m.ObserveBlob("put", nil)
	m.ObserveHTTP("GET", "/", "200", time.Millisecond)
}

func TestKafkaHeadersSorted(t *testing.T) {
	assert.Nil(t, KafkaHeaders(nil))
	got := KafkaHeaders(map[string]string{"event-type": "donation.verify", "actor": "a@example.com"})
	assert.Equal(t, []kafka.Header{
		{Key: "actor", Value: []byte("a@example.com")},
		{Key: "event-type", Value: []byte("donation.verify")},
	}, got)
	assert.Equal(t, "donation:42", MakeKey("donation", 42))
}

func TestNewKafkaProducerRequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducer(KafkaConfig{Topic: "mala.workflow"})
	assert.Error(t, err)

	p, err := NewKafkaProducer(KafkaConfig{Brokers: []string{"127.0.0.1:9092"}, Topic: "mala.workflow"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPublishTimeout, p.timeout)
	require.NoError(t, p.Close())
}

func TestComplaintMail(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.org", From: "office@example.org", ReplyTo: "help@example.org"}
	m := ComplaintReceivedMail("anil@example.com", "Anil <script>", "MMN-CMP-20250315-ABCD", "Clinic")
	assert.Equal(t, "Complaint registered: MMN-CMP-20250315-ABCD", m.Subject)
	assert.Contains(t, m.Text, "Reference ID: MMN-CMP-20250315-ABCD")
	assert.Contains(t, m.HTML, "Anil &lt;script&gt;")

	msg := NewMessage(cfg, m)
	assert.Equal(t, []string{"anil@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"help@example.org"}, msg.GetHeader("Reply-To"))
	assert.Equal(t, []string{"MMN-CMP-20250315-ABCD"}, msg.GetHeader(ReferenceHeader))

	thanks := NewMessage(SMTPConfig{From: "office@example.org"}, DonationThanksMail("ravi@example.com", "Ravi", "500.00"))
	assert.Empty(t, thanks.GetHeader("Reply-To"))
	assert.Empty(t, thanks.GetHeader(ReferenceHeader))
}
