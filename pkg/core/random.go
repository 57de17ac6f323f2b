package core

import "math/rand"

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(random *rand.Rand) Vec3 {
	return Vec3{random.Float64(), random.Float64(), random.Float64()}
}

// RandomVec3Range returns a vector with each component uniform in [min, max)
func RandomVec3Range(random *rand.Rand, minVal, maxVal float64) Vec3 {
	span := maxVal - minVal
	return Vec3{
		X: minVal + random.Float64()*span,
		Y: minVal + random.Float64()*span,
		Z: minVal + random.Float64()*span,
	}
}

// RandomInUnitSphere generates a random point strictly inside the unit ball
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1)³ cube, accept ~52% of the time
		p := RandomVec3Range(random, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
