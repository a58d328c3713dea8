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

// Package pharm is the main package of the goPharm library. It provides pharmacophoric points and
// pharmacophores, and facilities for reading and writing the files used by some common
// pharmacophore modelling programs.
//
// # goPharm capabilities
//
//   - Pharmacophoric points of eight kinds (hb acceptor and donor, aromatic ring, hydrophobicity,
//     positive and negative charge, excluded and included volumes), with a center, a tolerance
//     radius and, optionally, a direction. Lengths are handled with the units package, so points
//     can be built from, and queried in, any length unit.
//   - Reads/writes pharmer (.json), MOE (.ph4), LigandScout (.pml) and PharmaGist (.mol2) files.
//     Files can be gzip (.gz) or zstd (.zst) compressed. Files are written atomically.
//   - Reads the ligand and receptor PDB blocks embedded in pharmer files.
//   - Aggregates the pharmacophores obtained from several frames of a trajectory into a set
//     of unique points with their frequencies (a "dynophore").
//   - Pharmacophores can be drawn by anything implementing the Viewer interface. The chemplot
//     package implements a Viewer that produces 2D projections with gonum/plot.
//   - The distances between features can be analyzed as a graph with the chemgraph package.
//   - The features of a pharmacophore can be JSON encoded and transfered to other programs
//     with the chemjson package.
//
// Errors returned by the package are of the *Error type, and can be classified with errors.Is
// and the Err* variables. Logging is done with a zap logger which, by default, discards
// everything. Use SetLogger to change that.
package pharm
