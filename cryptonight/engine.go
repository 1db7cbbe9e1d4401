package cryptonight

import (
	"sync"

	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
)

// roundEngine one realization of the AES round, bound to a Context for its
// lifetime. rounds applies ten sequential rounds to each of the eight text
// blocks; singleRound applies the aesenc transform once.
type roundEngine struct {
	name        string
	rounds      func(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32)
	singleRound func(dst, src, roundKey *[2]uint64)
}

var softEngine = roundEngine{
	name:        "soft",
	rounds:      aes_rounds_generic,
	singleRound: aes_single_round_generic,
}

var engineOnce sync.Once

// defaultEngine the fastest engine the cpu supports. Detection is a
// write-once query resolved before worker threads start.
func defaultEngine() roundEngine {
	engine := softEngine
	if hardwareEngine.rounds != nil {
		engine = hardwareEngine
	}
	engineOnce.Do(func() {
		utils.Debugf("CryptoNight", "using %s round engine", engine.name)
	})
	return engine
}
