// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pyramid

import "github.com/aclements/go-gg/generic/slice"

// Consolidate merges the age sequences of the left and right halves
// into one axis order that lists every age exactly once.
//
// Where the sides agree on the relative order of two ages, so does
// the result. An age that only one side has is emitted as soon as it
// reaches the front of that side. If both fronts appear on both sides
// but differ, the sides disagree and the left order wins.
func Consolidate(left, right []string) []string {
	ul := slice.Nub(left).([]string)
	ur := slice.Nub(right).([]string)
	inLeft, inRight := set(ul), set(ur)

	labels := make([]string, 0, len(ul)+len(ur))
	emitted := make(map[string]bool)
	i, j := 0, 0
	for {
		for i < len(ul) && emitted[ul[i]] {
			i++
		}
		for j < len(ur) && emitted[ur[j]] {
			j++
		}
		if i == len(ul) && j == len(ur) {
			break
		}

		var next string
		switch {
		case j == len(ur) || (i < len(ul) && !inRight[ul[i]]):
			next = ul[i]
		case i == len(ul) || !inLeft[ur[j]]:
			next = ur[j]
		default:
			// Both fronts are on both sides. If they are
			// equal this emits it once; otherwise the right
			// cursor skips ul[i] when it gets there.
			next = ul[i]
		}
		emitted[next] = true
		labels = append(labels, next)
	}
	return labels
}

func set(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// Arrange returns the points whose age is in labels, grouped by age
// in label order. Points with the same age keep their relative order.
func Arrange(points []*DataPoint, labels []string) []*DataPoint {
	byAge := make(map[string][]*DataPoint, len(labels))
	for _, p := range points {
		byAge[p.Age] = append(byAge[p.Age], p)
	}
	out := make([]*DataPoint, 0, len(points))
	for _, age := range labels {
		out = append(out, byAge[age]...)
		// Guard against duplicate labels.
		delete(byAge, age)
	}
	return out
}

// Split returns the points whose gender is leftFilter and the points
// whose gender is rightFilter, each in order. If the filters are
// equal, matching points appear on both sides.
func Split(points []*DataPoint, leftFilter, rightFilter string) (left, right []*DataPoint) {
	for _, p := range points {
		if p.Gender == leftFilter {
			left = append(left, p)
		}
		if p.Gender == rightFilter {
			right = append(right, p)
		}
	}
	return
}

// Ages returns the age of each point.
func Ages(points []*DataPoint) []string {
	ages := make([]string, len(points))
	for i, p := range points {
		ages[i] = p.Age
	}
	return ages
}
