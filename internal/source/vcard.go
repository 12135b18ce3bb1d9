package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/record"
)

// DecodeVCards turns every card of r that has a usable name into a person
// record: BDAY is the birthday and ANNIVERSARY the wedding day. Cards
// without a name or a parsable date are skipped. On a decoding error the
// people read so far are returned along with the error.
func DecodeVCards(r io.Reader) ([]record.Person, error) {
	log := slog.With(config.LogKeyComponent, config.CompSource)
	decoder := vcard.NewDecoder(r)

	var people []record.Person
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resynchronize after a broken card.
			return people, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		name := cardName(card)
		if name == "" {
			log.Debug(config.MsgSkippedCard, config.LogKeyError, config.ErrNameMissing)
			continue
		}
		birthday := cardDate(card, config.VCardBDAY, log)
		wedding := cardDate(card, config.VCardAnniversary, log)
		if birthday == nil && wedding == nil {
			continue
		}
		people = append(people, record.NewPerson(name, birthday, nil, wedding))
	}
	return people, nil
}

// cardName applies the name strategy: FN (Formatted) > N (Structured).
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(config.VCardFN)); fn != "" {
		return fn
	}
	n := card.Name()
	if n == nil {
		return ""
	}
	given, family := strings.TrimSpace(n.GivenName), strings.TrimSpace(n.FamilyName)
	if given == "" {
		return ""
	}
	if family == "" {
		return given
	}
	return given + " " + family
}

func cardDate(card vcard.Card, field string, log *slog.Logger) date.AnyDate {
	value := card.Value(field)
	if value == "" {
		return nil
	}
	d, err := parseVCardDate(value)
	if err != nil {
		log.Debug(config.MsgSkippedDate, config.LogKeyValue, value)
		return nil
	}
	return d
}

// parseVCardDate handles the vCard date formats: full dates carry a year,
// truncated --MM-DD ones do not.
func parseVCardDate(value string) (date.AnyDate, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return date.FromTime(t), nil
		}
	}

	// Parse into a leap year so --02-29 survives.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safe := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return date.FromTime(safe).Recurring(), nil
		}
	}
	return nil, errors.New(config.ErrDateParse)
}
