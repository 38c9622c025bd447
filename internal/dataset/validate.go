// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID reports more than one record with the same ID in a table.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrOrphanRecord reports a child whose parent reference does not resolve.
	ErrOrphanRecord = errors.New("orphan record")
	// ErrAncestorMismatch reports a denormalized ancestor ID that disagrees
	// with the record's parent chain.
	ErrAncestorMismatch = errors.New("ancestor mismatch")
	// ErrCountMismatch reports table counts diverging from a pinned snapshot.
	ErrCountMismatch = errors.New("record count mismatch")
	// ErrEmptyName reports a record without a name.
	ErrEmptyName = errors.New("empty record name")
)

// Validate checks the dataset invariants: unique IDs per table, every child
// referencing exactly one existing parent, denormalized ancestor IDs agreeing
// with the parent chain and non-empty names. It returns the first violation
// found, walking tables top-down.
func (ds *Dataset) Validate() error {
	states := make(map[int64]State, len(ds.States))
	for _, s := range ds.States {
		if _, dup := states[s.ID]; dup {
			return fmt.Errorf("%w: uf %d", ErrDuplicateID, s.ID)
		}
		if s.Name == "" {
			return fmt.Errorf("%w: uf %d", ErrEmptyName, s.ID)
		}
		states[s.ID] = s
	}

	mesos := make(map[int64]Mesoregion, len(ds.Mesoregions))
	for _, m := range ds.Mesoregions {
		if _, dup := mesos[m.ID]; dup {
			return fmt.Errorf("%w: mesorregiao %d", ErrDuplicateID, m.ID)
		}
		if m.Name == "" {
			return fmt.Errorf("%w: mesorregiao %d", ErrEmptyName, m.ID)
		}
		if _, ok := states[m.StateID]; !ok {
			return fmt.Errorf("%w: mesorregiao %d references uf %d", ErrOrphanRecord, m.ID, m.StateID)
		}
		mesos[m.ID] = m
	}

	micros := make(map[int64]Microregion, len(ds.Microregions))
	for _, m := range ds.Microregions {
		if _, dup := micros[m.ID]; dup {
			return fmt.Errorf("%w: microrregiao %d", ErrDuplicateID, m.ID)
		}
		if m.Name == "" {
			return fmt.Errorf("%w: microrregiao %d", ErrEmptyName, m.ID)
		}
		parent, ok := mesos[m.MesoregionID]
		if !ok {
			return fmt.Errorf("%w: microrregiao %d references mesorregiao %d", ErrOrphanRecord, m.ID, m.MesoregionID)
		}
		if m.StateID != parent.StateID {
			return fmt.Errorf("%w: microrregiao %d has uf %d, parent chain has %d", ErrAncestorMismatch, m.ID, m.StateID, parent.StateID)
		}
		micros[m.ID] = m
	}

	muns := make(map[int64]Municipality, len(ds.Municipalities))
	for _, m := range ds.Municipalities {
		if _, dup := muns[m.ID]; dup {
			return fmt.Errorf("%w: municipio %d", ErrDuplicateID, m.ID)
		}
		if m.Name == "" {
			return fmt.Errorf("%w: municipio %d", ErrEmptyName, m.ID)
		}
		parent, ok := micros[m.MicroregionID]
		if !ok {
			return fmt.Errorf("%w: municipio %d references microrregiao %d", ErrOrphanRecord, m.ID, m.MicroregionID)
		}
		if m.MesoregionID != parent.MesoregionID || m.StateID != parent.StateID {
			return fmt.Errorf("%w: municipio %d ancestors (%d, %d) disagree with parent chain (%d, %d)",
				ErrAncestorMismatch, m.ID, m.MesoregionID, m.StateID, parent.MesoregionID, parent.StateID)
		}
		muns[m.ID] = m
	}

	districts := make(map[int64]District, len(ds.Districts))
	for _, d := range ds.Districts {
		if _, dup := districts[d.ID]; dup {
			return fmt.Errorf("%w: distrito %d", ErrDuplicateID, d.ID)
		}
		if d.Name == "" {
			return fmt.Errorf("%w: distrito %d", ErrEmptyName, d.ID)
		}
		parent, ok := muns[d.MunicipalityID]
		if !ok {
			return fmt.Errorf("%w: distrito %d references municipio %d", ErrOrphanRecord, d.ID, d.MunicipalityID)
		}
		if d.MicroregionID != parent.MicroregionID || d.MesoregionID != parent.MesoregionID || d.StateID != parent.StateID {
			return fmt.Errorf("%w: distrito %d ancestors disagree with municipio %d", ErrAncestorMismatch, d.ID, d.MunicipalityID)
		}
		districts[d.ID] = d
	}

	subs := make(map[int64]Subdistrict, len(ds.Subdistricts))
	for _, s := range ds.Subdistricts {
		if _, dup := subs[s.ID]; dup {
			return fmt.Errorf("%w: subdistrito %d", ErrDuplicateID, s.ID)
		}
		if s.Name == "" {
			return fmt.Errorf("%w: subdistrito %d", ErrEmptyName, s.ID)
		}
		parent, ok := districts[s.DistrictID]
		if !ok {
			return fmt.Errorf("%w: subdistrito %d references distrito %d", ErrOrphanRecord, s.ID, s.DistrictID)
		}
		if s.MunicipalityID != parent.MunicipalityID || s.MicroregionID != parent.MicroregionID ||
			s.MesoregionID != parent.MesoregionID || s.StateID != parent.StateID {
			return fmt.Errorf("%w: subdistrito %d ancestors disagree with distrito %d", ErrAncestorMismatch, s.ID, s.DistrictID)
		}
		subs[s.ID] = s
	}

	return nil
}
