package social

import "fmt"

// Track is a career ladder. Officials on the same track compete for the
// same promotions.
type Track uint8

const (
	TrackParty    Track = iota // Party apparatus
	TrackState                 // Government ministries
	TrackSecurity              // State security
	TrackMilitary              // Armed forces
	TrackEconomic              // Planning and industry
	TrackRegional              // Provincial administration
)

// NumTracks is the total number of tracks.
const NumTracks = 6

var trackNames = [NumTracks]string{"party", "state", "security", "military", "economic", "regional"}

// String returns the track's stable identifier.
func (t Track) String() string {
	if int(t) < NumTracks {
		return trackNames[t]
	}
	return fmt.Sprintf("track(%d)", uint8(t))
}

// ParseTrack maps an identifier such as "security" to its Track.
func ParseTrack(name string) (Track, error) {
	for i, n := range trackNames {
		if n == name {
			return Track(i), nil
		}
	}
	return TrackParty, fmt.Errorf("social: unknown track %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Track) MarshalText() ([]byte, error) {
	if int(t) >= NumTracks {
		return nil, fmt.Errorf("social: invalid track %d", uint8(t))
	}
	return []byte(trackNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Track) UnmarshalText(b []byte) error {
	v, err := ParseTrack(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MaxPositionIndex is the highest rung of any track.
const MaxPositionIndex = 8
