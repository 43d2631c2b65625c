package protocol

// Reading is a glucose sample carried by a dictionary.
type Reading struct {
	Value        int
	Trend        int
	HasTrend     bool
	Timestamp    int64
	HasTimestamp bool
}

// SettingsUpdate holds the settings keys present in a dictionary.
// Absent keys are nil.
type SettingsUpdate struct {
	Invert    *bool
	TextAlign *uint8
	Language  *uint8
}

// Empty reports whether no settings key was present.
func (u SettingsUpdate) Empty() bool {
	return u.Invert == nil && u.TextAlign == nil && u.Language == nil
}

// NewRequest builds the face's request for fresh glucose data.
func NewRequest() *Dict {
	d := NewDict()
	d.WriteUint8(KeyRequestData, 1)
	return d
}

// IsRequest reports whether d asks for glucose data.
func IsRequest(d *Dict) bool {
	return d.Has(KeyRequestData)
}

// NewGlucose builds a reading message.
func NewGlucose(value, trend int, timestamp int64) *Dict {
	d := NewDict()
	d.WriteInt32(KeyGlucoseValue, int32(value))
	d.WriteInt32(KeyTrendValue, int32(trend))
	d.WriteInt32(KeyTimestamp, int32(timestamp))
	return d
}

// ReadingFrom extracts a reading. It returns false when the dictionary
// carries no glucose value.
func ReadingFrom(d *Dict) (Reading, bool) {
	v, ok := d.Int(KeyGlucoseValue)
	if !ok {
		return Reading{}, false
	}
	r := Reading{Value: int(v)}
	if t, ok := d.Int(KeyTrendValue); ok {
		r.Trend = int(t)
		r.HasTrend = true
	}
	if ts, ok := d.Int(KeyTimestamp); ok {
		r.Timestamp = ts
		r.HasTimestamp = true
	}
	return r, true
}

// NewSettings builds a full settings message.
func NewSettings(invert bool, align, language uint8) *Dict {
	d := NewDict()
	var inv uint8
	if invert {
		inv = 1
	}
	d.WriteUint8(KeyInvert, inv)
	d.WriteUint8(KeyTextAlign, align)
	d.WriteUint8(KeyLanguage, language)
	return d
}

// SettingsFrom extracts whichever settings keys are present.
func SettingsFrom(d *Dict) SettingsUpdate {
	var u SettingsUpdate
	if v, ok := d.Int(KeyInvert); ok {
		b := v != 0
		u.Invert = &b
	}
	if v, ok := d.Int(KeyTextAlign); ok {
		a := uint8(v)
		u.TextAlign = &a
	}
	if v, ok := d.Int(KeyLanguage); ok {
		l := uint8(v)
		u.Language = &l
	}
	return u
}
