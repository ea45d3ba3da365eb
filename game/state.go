package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"maps"
	"slices"
	"sort"
)

type Status int

const (
	Waiting Status = iota // roster not full yet
	Active                // turns may advance
	Done                  // a car crossed the finish line
)

var statusNames = [...]string{"waiting", "active", "done"}

func (s Status) String() string {
	if s < Waiting || s > Done {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	if s < Waiting || s > Done {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Ledger counts units sold per action since the race started.
type Ledger map[ActionType]uint64

// State is the whole race aggregate. Exported operations never mutate their
// receiver: they work on a copy and return it together with an Event.
type State struct {
	ID      string         `json:"id"`
	Owner   string         `json:"owner"`
	Config  Config         `json:"config"`
	Status  Status         `json:"status"`
	Turns   uint64         `json:"turns"`
	Roster  []CarID        `json:"roster"` // turn order
	Cars    map[CarID]*Car `json:"cars"`
	Hazards []uint64       `json:"bananas"` // ascending banana positions
	Sold    Ledger         `json:"sold"`
	Winner  CarID          `json:"winner,omitempty"`
}

// NewState initializes a waiting race with an empty roster.
func NewState(id, owner string, cfg Config) *State {
	return &State{
		ID:     id,
		Owner:  owner,
		Config: cfg.clone(),
		Status: Waiting,
		Cars:   make(map[CarID]*Car),
		Sold:   make(Ledger),
	}
}

func (s State) Copy() *State {
	cars := make(map[CarID]*Car, len(s.Cars))
	for id, car := range s.Cars {
		c := *car
		cars[id] = &c
	}
	sold := maps.Clone(s.Sold)
	if sold == nil {
		sold = make(Ledger)
	}

	return &State{
		ID:      s.ID,
		Owner:   s.Owner,
		Config:  s.Config.clone(),
		Status:  s.Status,
		Turns:   s.Turns,
		Roster:  slices.Clone(s.Roster),
		Cars:    cars,
		Hazards: slices.Clone(s.Hazards),
		Sold:    sold,
		Winner:  s.Winner,
	}
}

// Car returns the registry entry of id.
func (s *State) Car(id CarID) (*Car, error) {
	car, ok := s.Cars[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCar, id)
	}
	return car, nil
}

// CarData returns copies of all cars in turn order.
func (s *State) CarData() []Car {
	cars := make([]Car, 0, len(s.Roster))
	for _, id := range s.Roster {
		cars = append(cars, *s.Cars[id])
	}
	return cars
}

// Bananas returns the hazard positions in ascending order.
func (s *State) Bananas() []uint64 {
	return slices.Clone(s.Hazards)
}

// ActiveCar returns the car whose turn it is.
func (s *State) ActiveCar() (CarID, bool) {
	if len(s.Roster) == 0 {
		return "", false
	}
	return s.Roster[s.Turns%uint64(len(s.Roster))], true
}

// carsAhead returns the cars strictly ahead of position, nearest first. Cars at
// the same position keep turn order.
func (s *State) carsAhead(position uint64) []*Car {
	var ahead []*Car
	for _, id := range s.Roster {
		if car := s.Cars[id]; car.Position > position {
			ahead = append(ahead, car)
		}
	}
	sort.SliceStable(ahead, func(i, j int) bool {
		return ahead[i].Position < ahead[j].Position
	})
	return ahead
}

// nextHazard returns the index of the first hazard strictly after position.
func (s *State) nextHazard(position uint64) int {
	return sort.Search(len(s.Hazards), func(i int) bool {
		return s.Hazards[i] > position
	})
}

func (s State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Status))
	binary.Write(hasher, binary.LittleEndian, s.Turns)

	// Hash cars in turn order
	for _, id := range s.Roster {
		car := s.Cars[id]
		hasher.Write([]byte(id))
		binary.Write(hasher, binary.LittleEndian, []uint64{car.Balance, car.Position, car.Speed, car.Shield})
	}

	for _, banana := range s.Hazards {
		binary.Write(hasher, binary.LittleEndian, banana)
	}

	for _, a := range ActionTypes {
		binary.Write(hasher, binary.LittleEndian, s.Sold[a])
	}

	hasher.Write([]byte(s.Winner))

	return StateHash(hasher.Sum64())
}
