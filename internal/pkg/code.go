package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

// randHex n upper-case hex characters taken from a random UUID.
func randHex(n int) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	return strings.ToUpper(hex[:n]), nil
}

// AdminMembershipID MEM####, used for members created by an admin.
func AdminMembershipID() (string, error) {
	d, err := RandDigits(4)
	if err != nil {
		return "", err
	}
	return "MEM" + d, nil
}

// ApplicationMembershipID MEM<8 hex>, used when an application is approved.
func ApplicationMembershipID() (string, error) {
	h, err := randHex(8)
	if err != nil {
		return "", err
	}
	return "MEM" + h, nil
}

// ComplaintReference MMN-CMP-YYYYMMDD-<4 hex> for the UTC day of now.
func ComplaintReference(now time.Time) (string, error) {
	h, err := randHex(4)
	if err != nil {
		return "", err
	}
	return "MMN-CMP-" + now.UTC().Format("20060102") + "-" + h, nil
}
