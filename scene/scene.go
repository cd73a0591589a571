/*
 * scene.go, part of goCryst.
 *
 * Copyright 2025 The goCryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package scene converts crystal structures into the declarative JSON scene
//documents consumed by web-based 3D viewers: spheres for atoms, cylinders
//for bonds, lines for the unit cell and arrows for the coordinate axes.
package scene

import (
	"encoding/json"
)

//The primitive types a Node can carry.
const (
	TypeSpheres   = "spheres"
	TypeCylinders = "cylinders"
	TypeLines     = "lines"
	TypeArrows    = "arrows"
)

// Scene is the top-level document: a named list of scene nodes with a view
// origin. It serializes to the viewer's JSON contract.
type Scene struct {
	Name     string    `json:"name"`
	Contents []*Node   `json:"contents"`
	Origin   []float64 `json:"origin"`
	Visible  bool      `json:"visible"`
}

// Node is one entry of a scene: either a group (Name plus child Contents)
// or a drawable primitive (Type plus the geometry fields for that type).
// Unused fields stay empty and are dropped from the JSON.
type Node struct {
	Name     string  `json:"name,omitempty"`
	Type     string  `json:"type,omitempty"`
	Contents []*Node `json:"contents,omitempty"`

	//primitive geometry
	Positions     [][]float64   `json:"positions,omitempty"`     //spheres, lines
	PositionPairs [][][]float64 `json:"positionPairs,omitempty"` //cylinders, arrows
	Color         string        `json:"color,omitempty"`
	Radius        float64       `json:"radius,omitempty"`
	HeadLength    float64       `json:"headLength,omitempty"` //arrows
	HeadWidth     float64       `json:"headWidth,omitempty"`  //arrows

	Origin    []float64 `json:"origin,omitempty"`
	Visible   bool      `json:"visible,omitempty"`
	Clickable bool      `json:"clickable"`
}

// MarshalJSON is the plain struct marshalling; the method exists so the
// scene type documents that it is the JSON contract.
func (s *Scene) MarshalJSON() ([]byte, error) {
	type alias Scene
	return json.Marshal((*alias)(s))
}

// FindNode returns the first top-level node with the given name, or nil.
func (s *Scene) FindNode(name string) *Node {
	for _, n := range s.Contents {
		if n.Name == name {
			return n
		}
	}
	return nil
}
