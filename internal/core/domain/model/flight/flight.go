package flight

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var (
	ErrFlightIsNotConstructed = errors.New("Flight must be created via NewFlight constructor")

	numberPattern     = regexp.MustCompile(`^[A-Z0-9]{2,3}-?[0-9]{1,5}$`)
	airWaybillPattern = regexp.MustCompile(`^[0-9]{3}-?[0-9]{8}$`)
)

// Flight is a scheduled air leg that carries bags between the operating countries.
type Flight struct {
	id                 kernel.UUID
	number             string
	departureDate      kernel.Day
	originCountry      kernel.Country
	destinationCountry kernel.Country
	branchID           kernel.UUID
	airWaybills        []string
	createdAt          time.Time

	isConstructed bool
}

// Schedule holds the attributes staff may set and later revise.
type Schedule struct {
	Number             string
	DepartureDate      kernel.Day
	OriginCountry      kernel.Country
	DestinationCountry kernel.Country
	BranchID           kernel.UUID
	AirWaybills        []string
}

func NewFlight(id kernel.UUID, schedule Schedule, now time.Time) (*Flight, error) {
	return RestoreFlight(id, schedule, now)
}

func RestoreFlight(id kernel.UUID, schedule Schedule, createdAt time.Time) (*Flight, error) {
	f := &Flight{createdAt: createdAt.UTC(), isConstructed: true}

	if err := errors.Join(f.setID(id), f.setSchedule(schedule)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flight) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFlightIsNotConstructed
	}
	return nil
}

func (f *Flight) IsEqual(other *Flight) bool {
	return other != nil && f.id.IsEqual(other.id)
}

func (f *Flight) ID() kernel.UUID                    { return f.id }
func (f *Flight) Number() string                     { return f.number }
func (f *Flight) DepartureDate() kernel.Day          { return f.departureDate }
func (f *Flight) OriginCountry() kernel.Country      { return f.originCountry }
func (f *Flight) DestinationCountry() kernel.Country { return f.destinationCountry }
func (f *Flight) BranchID() kernel.UUID              { return f.branchID }
func (f *Flight) CreatedAt() time.Time               { return f.createdAt }

func (f *Flight) AirWaybills() []string {
	out := make([]string, len(f.airWaybills))
	copy(out, f.airWaybills)
	return out
}

// Reschedule replaces every schedule attribute or nothing.
func (f *Flight) Reschedule(schedule Schedule) error {
	updated := *f
	if err := updated.setSchedule(schedule); err != nil {
		return err
	}
	*f = updated
	return nil
}

func (f *Flight) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Flight) setSchedule(s Schedule) error {
	number := strings.ToUpper(strings.TrimSpace(s.Number))

	var problems []error
	if !numberPattern.MatchString(number) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"number", fmt.Errorf("%q is not a flight number", s.Number)))
	}
	if s.DepartureDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("departure_date"))
	}
	problems = append(problems, s.OriginCountry.Validate(), s.DestinationCountry.Validate())
	if s.OriginCountry == s.DestinationCountry {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"route", fmt.Errorf("origin and destination are both %s", s.OriginCountry)))
	}
	if err := s.BranchID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("branch_id", err))
	}

	awbs, err := normalizeAirWaybills(s.AirWaybills)
	problems = append(problems, err)

	if err := errors.Join(problems...); err != nil {
		return err
	}

	f.number = number
	f.departureDate = s.DepartureDate
	f.originCountry = s.OriginCountry
	f.destinationCountry = s.DestinationCountry
	f.branchID = s.BranchID
	f.airWaybills = awbs
	return nil
}

// normalizeAirWaybills strips dashes so "123-45678901" and "12345678901"
// are the same waybill, and drops duplicates.
func normalizeAirWaybills(in []string) ([]string, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		awb := strings.TrimSpace(raw)
		if !airWaybillPattern.MatchString(awb) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"air_waybills", fmt.Errorf("%q is not an air waybill number", raw))
		}
		awb = strings.ReplaceAll(awb, "-", "")
		if _, dup := seen[awb]; dup {
			continue
		}
		seen[awb] = struct{}{}
		out = append(out, awb)
	}
	return out, nil
}
