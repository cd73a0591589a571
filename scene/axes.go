/*
 * axes.go, part of goCryst.
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
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	cryst "github.com/crystkit/gocryst"
	"github.com/crystkit/gocryst/clog"
)

//Environment variables configuring the coordinate-axes decoration, all
//optional. They are read on every call, not cached.
const (
	EnvAxesMode       = "CT_AXES_MODE"        //"lattice" (default) or "cartesian"
	EnvAxesScale      = "CT_AXES_SCALE"       //arrow length, default 1.6
	EnvAxesHeadLength = "CT_AXES_HEAD_LENGTH" //default 0.32
	EnvAxesHeadWidth  = "CT_AXES_HEAD_WIDTH"  //default 0.18
	EnvAxesRadius     = "CT_AXES_RADIUS"      //shaft radius, default 0.07
)

type axesConfig struct {
	mode    string
	scale   float64
	headLen float64
	headWid float64
	radius  float64
}

func envFloat(name string, def float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func readAxesConfig() (*axesConfig, error) {
	c := &axesConfig{mode: strings.ToLower(os.Getenv(EnvAxesMode))}
	if c.mode == "" {
		c.mode = "lattice"
	}
	var err error
	if c.scale, err = envFloat(EnvAxesScale, 1.6); err != nil {
		return nil, err
	}
	if c.headLen, err = envFloat(EnvAxesHeadLength, 0.32); err != nil {
		return nil, err
	}
	if c.headWid, err = envFloat(EnvAxesHeadWidth, 0.18); err != nil {
		return nil, err
	}
	if c.radius, err = envFloat(EnvAxesRadius, 0.07); err != nil {
		return nil, err
	}
	return c, nil
}

// appendAxes appends a three-arrow coordinate-axes node to the scene, in
// place. The axes are cosmetic and best-effort: on a nil lattice nothing is
// added, and any failure is logged at debug level and swallowed so the
// caller always keeps its scene.
func appendAxes(sc *Scene, lat *cryst.Lattice) {
	if lat == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			clog.Default().Debugw("Skipping axes augmentation due to panic", "panic", r)
		}
	}()
	cfg, err := readAxesConfig()
	if err != nil {
		clog.Default().Debugw("Skipping axes augmentation due to error", "error", err)
		return
	}

	var vectors [][]float64
	if cfg.mode == "cartesian" {
		vectors = [][]float64{
			{cfg.scale, 0, 0},
			{0, cfg.scale, 0},
			{0, 0, cfg.scale},
		}
	} else {
		for i := 0; i < 3; i++ {
			vectors = append(vectors, normalizedTo(lat.Row(i), cfg.scale))
		}
	}

	origin := sc.Origin
	if origin == nil {
		origin = []float64{0, 0, 0}
	}
	colors := []string{"red", "green", "blue"}
	node := &Node{Name: "axes", Visible: true, Origin: origin}
	for i, v := range vectors {
		node.Contents = append(node.Contents, &Node{
			Type:          TypeArrows,
			PositionPairs: [][][]float64{{{0, 0, 0}, v}},
			Color:         colors[i],
			Radius:        cfg.radius,
			HeadLength:    cfg.headLen,
			HeadWidth:     cfg.headWid,
		})
	}
	sc.Contents = append(sc.Contents, node)
}

//normalizedTo scales v to the given length. A zero vector divides by 1
//instead of its norm: a degenerate lattice row yields a zero-length arrow
//rather than a crash.
func normalizedTo(v []float64, length float64) []float64 {
	norm := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if norm == 0 {
		norm = 1.0
	}
	return []float64{v[0] / norm * length, v[1] / norm * length, v[2] / norm * length}
}
