// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package tzif decodes the version-1 data block of TZif time zone records
// (RFC 8536) as they are stored, back to back, in a tzdb data file.
//
// A record looks like:
//
//	 0    4    5                   20   24   28   32   36   40   44
//	+----+----+-------------------+----+----+----+----+----+----+
//	|TZif|ver | reserved          |ut  |std |leap| T  | N  | C  |
//	+----+----+-------------------+----+----+----+----+----+----+
//	| T x int32 transition times                                |
//	+-----------------------------------------------------------+
//	| T x uint8 transition type indices                         |
//	+-----------------------------------------------------------+
//	| N x (int32 UTC offset, int8 isdst, uint8 abbrev index)    |
//	+-----------------------------------------------------------+
//	| C abbreviation bytes (NUL-terminated strings)             |
//	+-----------------------------------------------------------+
//
// All integers are big-endian.  Only the magic and the three counts at
// offset 32 are interpreted; the rest of the header, and anything that
// follows the abbreviation table (leap seconds, indicators, a version 2+
// block), is ignored.
package tzif
