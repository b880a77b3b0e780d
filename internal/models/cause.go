package models

// Death causes carried on kill effects. Events match on these tokens, so
// they are machine-readable; the public announcement text is a separate
// reveal effect.
const (
	CauseAssassination = "assassination"
	CauseLynch         = "lynch"
	CauseVigilante     = "vigilante"
	CauseCounterAttack = "counter_attack"
	CauseSacrifice     = "sacrifice"
	CauseZombie        = "zombie"
	CauseHeartbreak    = "heartbreak"
	CauseSuicide       = "suicide"
)
