package tts

// Capabilities is the set of backends the current environment can serve.
// It is derived once from Config plus a PATH probe and handed to the
// selector, so availability can be faked in tests.
type Capabilities struct {
	Premium   bool // premium cloud credential present (cacheable output)
	Secondary bool // secondary cloud credential present
	System    bool // local OS voice on PATH
}

// Select returns the best available backend: premium over secondary over
// system. KindNone means nothing is available; callers treat that as a
// no-op outcome, not an error.
func Select(caps Capabilities) Kind {
	switch {
	case caps.Premium:
		return KindElevenLabs
	case caps.Secondary:
		return KindOpenAI
	case caps.System:
		return KindSystem
	default:
		return KindNone
	}
}

// Chain returns every available backend in strict priority order. An empty
// chain means Select would return KindNone.
func Chain(caps Capabilities) []Kind {
	var kinds []Kind
	if caps.Premium {
		kinds = append(kinds, KindElevenLabs)
	}
	if caps.Secondary {
		kinds = append(kinds, KindOpenAI)
	}
	if caps.System {
		kinds = append(kinds, KindSystem)
	}
	return kinds
}
