/*
 * doc.go, part of gopharm.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Gopharm is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package chemjson implements serialization and unserialization of
// goPharm pharmacophores. Its planned use is the communication of goPharm
// programs with other, independent programs, which can be written in
// other languages, as long as they can read and write JSON.
// The protocol is line-based: each JSON object is written in its own line,
// so pharmacophores can be sent through UNIX pipes. chemjson also
// implements the transmission of options, so an external program can send
// the features found in each frame of a trajectory and collect the
// resulting pharmacophore.
package chemjson
