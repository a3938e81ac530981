package agent

import "math/rand/v2"

// splitmix64 mixes a 64-bit value into a well-distributed stream seed.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Stream derives the random stream for one (agent, timestep) pair from the
// run seed, the agent's stable index, and the step index. Every worker
// reconstructs the same stream for the same pair, so results do not depend
// on worker count or scheduling order.
func Stream(seed int64, agentIndex, step int) (*rand.Rand, rand.Source) {
	a := splitmix64(uint64(seed) ^ splitmix64(uint64(agentIndex)))
	b := splitmix64(a ^ uint64(step))
	src := rand.NewPCG(a, b)
	return rand.New(src), src
}
