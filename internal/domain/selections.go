package domain

// Leg names used as keys in Selections.Transport.
const (
	LegOutbound = "outbound"
	LegReturn   = "return"
)

// TravelOption is one transport choice offered for a leg.
type TravelOption struct {
	ID            string `json:"id"`
	Mode          string `json:"mode"` // e.g. "bus", "train", "flight"
	Operator      string `json:"operator,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Duration      string `json:"duration,omitempty"`
	Price         string `json:"price,omitempty"`
}

// TravelOptions groups generated transport choices by leg.
type TravelOptions struct {
	Outbound []TravelOption `json:"outbound"`
	Return   []TravelOption `json:"return"`
}

// Clone returns a structural deep copy of the travel options.
func (t TravelOptions) Clone() TravelOptions {
	out := TravelOptions{}
	if t.Outbound != nil {
		out.Outbound = make([]TravelOption, len(t.Outbound))
		copy(out.Outbound, t.Outbound)
	}
	if t.Return != nil {
		out.Return = make([]TravelOption, len(t.Return))
		copy(out.Return, t.Return)
	}
	return out
}

// LodgingOption is one accommodation choice.
type LodgingOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Area          string   `json:"area,omitempty"`
	Rating        string   `json:"rating,omitempty"`
	PricePerNight string   `json:"pricePerNight,omitempty"`
	Photos        []string `json:"photos,omitempty"`
}

// LodgingOptions holds the generated accommodation choices.
type LodgingOptions struct {
	Hotels []LodgingOption `json:"hotels"`
}

// Clone returns a structural deep copy of the lodging options.
func (l LodgingOptions) Clone() LodgingOptions {
	out := LodgingOptions{}
	if l.Hotels != nil {
		out.Hotels = make([]LodgingOption, len(l.Hotels))
		for i, h := range l.Hotels {
			out.Hotels[i] = h
			out.Hotels[i].Photos = cloneStrings(h.Photos)
		}
	}
	return out
}

// TransportLeg is the user's chosen transport for one leg.
type TransportLeg struct {
	OptionID      string `json:"optionId,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Operator      string `json:"operator,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Price         string `json:"price,omitempty"`
}

// HotelBooking is a single-hotel choice covering the whole stay.
type HotelBooking struct {
	HotelID       string `json:"hotelId,omitempty"`
	Name          string `json:"name,omitempty"`
	CheckIn       string `json:"checkIn,omitempty"`
	CheckOut      string `json:"checkOut,omitempty"`
	PricePerNight string `json:"pricePerNight,omitempty"`
}

// DayBooking is a per-day hotel choice when the stay is split across hotels.
type DayBooking struct {
	Day           int    `json:"day"`
	Date          string `json:"date,omitempty"`
	HotelID       string `json:"hotelId,omitempty"`
	Name          string `json:"name,omitempty"`
	PricePerNight string `json:"pricePerNight,omitempty"`
}

// HotelsSelection records the user's lodging choice. When UseSameHotel is
// true, Booking covers the whole stay; otherwise BookingPerDay applies.
type HotelsSelection struct {
	UseSameHotel  bool          `json:"useSameHotel"`
	Booking       *HotelBooking `json:"booking,omitempty"`
	BookingPerDay []DayBooking  `json:"bookingPerDay,omitempty"`
}

// Selections holds the user's transport and lodging choices. It is
// independent of the Plan but referenced when computing cost summaries.
// Transport is keyed by leg name (LegOutbound, LegReturn).
type Selections struct {
	Transport map[string]TransportLeg `json:"transportSelections,omitempty"`
	Hotels    *HotelsSelection        `json:"hotelsSelection,omitempty"`
}

// Clone returns a structural deep copy of the selections.
func (s Selections) Clone() Selections {
	out := Selections{}
	if s.Transport != nil {
		out.Transport = make(map[string]TransportLeg, len(s.Transport))
		for k, v := range s.Transport {
			out.Transport[k] = v
		}
	}
	if s.Hotels != nil {
		hs := HotelsSelection{UseSameHotel: s.Hotels.UseSameHotel}
		if s.Hotels.Booking != nil {
			b := *s.Hotels.Booking
			hs.Booking = &b
		}
		if s.Hotels.BookingPerDay != nil {
			hs.BookingPerDay = make([]DayBooking, len(s.Hotels.BookingPerDay))
			copy(hs.BookingPerDay, s.Hotels.BookingPerDay)
		}
		out.Hotels = &hs
	}
	return out
}
