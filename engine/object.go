package engine

import "strconv"

// Object is a handle to an object owned by a World. Handles carry a
// generation: once the object is deleted, the handle stays dead even if the
// slot is reused.
type Object struct {
	ID  int
	Gen int
}

func (o Object) Valid() bool {
	return o.ID > 0
}

func (o Object) String() string {
	return strconv.Itoa(o.ID) + ":" + strconv.Itoa(o.Gen)
}

// objectStore tracks object generations and free ids.
type objectStore struct {
	gen  []int
	free []int
}

func (s *objectStore) create() Object {
	var id int
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		id = len(s.gen)
	}
	return Object{ID: id, Gen: s.gen[id-1]}
}

func (s *objectStore) destroy(o Object) bool {
	if !s.isAlive(o) {
		return false
	}
	s.gen[o.ID-1]++
	s.free = append(s.free, o.ID)
	return true
}

func (s *objectStore) isAlive(o Object) bool {
	if o.ID <= 0 || o.ID > len(s.gen) {
		return false
	}
	if s.gen[o.ID-1] != o.Gen {
		return false
	}
	for _, id := range s.free {
		if id == o.ID {
			return false
		}
	}
	return true
}
