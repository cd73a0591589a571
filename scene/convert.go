/*
 * convert.go, part of goCryst.
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

package scene

import (
	"errors"

	cryst "github.com/crystkit/gocryst"
	"github.com/crystkit/gocryst/clog"
	"github.com/crystkit/gocryst/graph"
	"github.com/crystkit/gocryst/legend"
)

// DepsUnavailableDetail is the message of the 500-class error returned when
// the conversion engines are not registered.
const DepsUnavailableDetail = "Crystal structure dependencies are unavailable. " +
	"Install 'gocryst/graph' and 'gocryst/legend'."

//The conversion engines, kept behind package-level bindings so their
//availability is checked at call time, not at load time: a deployment can
//swap or strip them, and the rest of the application still starts.
type engines struct {
	buildGraph  func(*cryst.Structure) (*graph.StructureGraph, error)
	buildLegend func(*cryst.Structure, string) *legend.Legend
}

var deps = defaultEngines()

func defaultEngines() engines {
	return engines{
		buildGraph: func(s *cryst.Structure) (*graph.StructureGraph, error) {
			return graph.FromMinDistNN(s)
		},
		buildLegend: legend.New,
	}
}

//ensureDependencies is re-run lazily on every conversion call.
func ensureDependencies() (engines, error) {
	if deps.buildGraph == nil || deps.buildLegend == nil {
		return engines{}, cryst.NewUnavailable(DepsUnavailableDetail, nil)
	}
	return deps, nil
}

// FromStructure converts a parsed structure into a scene: bond graph via the
// minimum-distance strategy, legend under the given radius strategy (""
// means "uniform"), serialization with the default rendering flags, and the
// coordinate-axes decoration. Untyped failures are logged and returned as a
// 500-class *cryst.Error; an already-typed *cryst.Error propagates unchanged.
func FromStructure(s *cryst.Structure, radiusStrategy string) (*Scene, error) {
	eng, err := ensureDependencies()
	if err != nil {
		return nil, err
	}
	if radiusStrategy == "" {
		radiusStrategy = legend.SchemeUniform
	}

	g, err := eng.buildGraph(s)
	if err != nil {
		return nil, sceneFailure(err)
	}
	leg := eng.buildLegend(s, radiusStrategy)
	sc, err := FromGraph(g, leg, DefaultOptions())
	if err != nil {
		return nil, sceneFailure(err)
	}
	appendAxes(sc, s.Lattice)
	return sc, nil
}

//sceneFailure converts an unexpected failure into the generic 500 error,
//after logging it with context. Typed errors pass through as they are.
func sceneFailure(err error) error {
	var ce *cryst.Error
	if errors.As(err, &ce) {
		return ce
	}
	clog.Default().Errorw("Failed to build crystal scene", "error", err)
	return cryst.NewInternal("Failed to generate crystal scene from structure.", err)
}

// FromCIFFile loads a CIF file into a scene.
func FromCIFFile(path string, radiusStrategy string) (*Scene, error) {
	if _, err := ensureDependencies(); err != nil {
		return nil, err
	}
	s, err := cryst.CIFFileRead(path)
	if err != nil {
		clog.Default().Errorw("Failed to parse CIF file", "path", path, "error", err)
		return nil, err
	}
	return FromStructure(s, radiusStrategy)
}

// FromCIFString converts CIF content provided as a string into a scene.
func FromCIFString(content string, radiusStrategy string) (*Scene, error) {
	if _, err := ensureDependencies(); err != nil {
		return nil, err
	}
	s, err := cryst.CIFStringRead(content)
	if err != nil {
		clog.Default().Errorw("Failed to parse CIF content", "error", err)
		return nil, err
	}
	return FromStructure(s, radiusStrategy)
}

// FromPoscarFile loads a VASP POSCAR/CONTCAR file into a scene.
func FromPoscarFile(path string, radiusStrategy string) (*Scene, error) {
	if _, err := ensureDependencies(); err != nil {
		return nil, err
	}
	s, err := cryst.PoscarFileRead(path)
	if err != nil {
		clog.Default().Errorw("Failed to parse VASP POSCAR/CONTCAR file", "path", path, "error", err)
		return nil, err
	}
	return FromStructure(s, radiusStrategy)
}

// FromFile loads a structure file into a scene, detecting the format from
// the file name (see cryst.FileRead).
func FromFile(path string, radiusStrategy string) (*Scene, error) {
	if _, err := ensureDependencies(); err != nil {
		return nil, err
	}
	s, err := cryst.FileRead(path)
	if err != nil {
		clog.Default().Errorw("Failed to parse structure file", "path", path, "error", err)
		return nil, err
	}
	return FromStructure(s, radiusStrategy)
}
