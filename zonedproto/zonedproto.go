// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zonedproto converts between zoned values and their protobuf
// well-known counterparts.
//
// A protobuf Timestamp is an offset-less instant restricted to the
// years 0001 through 9999, so the conversion keeps only the identity
// of a Time and the view must be reattached on the way back.  Leap
// seconds have no protobuf representation; an instant carrying one
// collapses onto its 59th second, which is how the wire format says
// readers should treat the smear.
package zonedproto

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.zoned.dev/civil"
	"go.zoned.dev/tz"
	"go.zoned.dev/zoned"
)

// Timestamp converts the instant to a protobuf Timestamp.
func Timestamp(t zoned.Time) (*timestamppb.Timestamp, error) {
	ts := &timestamppb.Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.SubsecNanos() % 1_000_000_000),
	}
	if err := ts.CheckValid(); err != nil {
		return nil, errors.Wrap(err, "zonedproto: timestamp")
	}
	return ts, nil
}

// Time converts a protobuf Timestamp to an instant viewed through
// zone.
func Time(ts *timestamppb.Timestamp, zone tz.Zone) (zoned.Time, error) {
	if err := ts.CheckValid(); err != nil {
		return zoned.Time{}, errors.Wrap(err, "zonedproto: timestamp")
	}
	t, err := zoned.FromUnix(ts.GetSeconds(), int64(ts.GetNanos()), zone)
	if err != nil {
		return zoned.Time{}, err
	}
	return t, nil
}

// Duration converts an exact span to a protobuf Duration.  Protobuf
// caps durations at roughly ten thousand years; wider spans fail.
func Duration(d civil.Delta) (*durationpb.Duration, error) {
	secs, nanos := d.Secs(), int32(d.SubsecNanos())
	dp := &durationpb.Duration{Seconds: secs, Nanos: nanos}
	if err := dp.CheckValid(); err != nil {
		return nil, errors.Wrap(err, "zonedproto: duration")
	}
	return dp, nil
}

// Delta converts a protobuf Duration to an exact span.
func Delta(dp *durationpb.Duration) (civil.Delta, error) {
	if err := dp.CheckValid(); err != nil {
		return civil.Delta{}, errors.Wrap(err, "zonedproto: duration")
	}
	d, err := civil.DeltaOf(dp.GetSeconds(), int64(dp.GetNanos()))
	if err != nil {
		return civil.Delta{}, err
	}
	return d, nil
}
