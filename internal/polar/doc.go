// Package polar implements the vector algebra the simulation is built on.
//
// Vectors are stored in polar form as a (magnitude, angle) pair:
//
//   - [Angle]: degrees normalized to [0, 360), wrap-safe arithmetic
//   - [Vector]: non-negative magnitude plus an [Angle], with exact
//     Cartesian interop via [FromCartesian], [Vector.X] and [Vector.Y]
//
// Polar form makes central and radial forces naturally expressible in
// magnitude/angle terms. The cost is that addition needs care: the
// magnitude follows from the law of cosines on the angle difference,
// while the angle is recomputed with atan2 on the summed Cartesian
// components so quadrants always resolve correctly.
package polar
