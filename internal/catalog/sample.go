package catalog

// Rand is the random source the sampler draws from. *math/rand.Rand
// satisfies it; tests inject deterministic sources.
type Rand interface {
	Intn(n int) int
}

// Sample draws one record with uniform probability from the records that
// pass the config plus its MinScore threshold. The second return value is
// false when no record qualifies, which is an expected state under
// strict filters, not a fault. Sample never mutates its inputs.
func Sample(records []Anime, cfg FilterConfig, rng Rand) (Anime, bool) {
	qualifying := make([]int, 0, len(records))
	for i := range records {
		if cfg.Matches(&records[i]) && cfg.meetsScoreThreshold(&records[i]) {
			qualifying = append(qualifying, i)
		}
	}
	if len(qualifying) == 0 {
		return Anime{}, false
	}
	return records[qualifying[rng.Intn(len(qualifying))]], true
}
