package dungeon

import (
	"fmt"
	"math/rand"
	"strings"
)

// Генератор записей для терминалов. Тон записи сползает с глубиной:
// верхние палубы пишут про плановые осмотры, нижние про то, что
// осмотры больше некому проводить.

var loreCrewNames = []string{
	"Vasquez", "Osei", "Harlow", "Nakamura", "Reyes",
	"Bosch", "Chen", "Okafor", "Nauth", "Leblanc",
	"Kovacs", "Adeyemi", "Strauss", "Yilmaz", "Petrov",
	"Moreau", "Diallo", "Ishikawa", "Andrade", "Volkov",
	"Ekwueme", "Szymanski", "Ortega", "Bergström", "Tanaka",
}

var loreRanks = []string{"Dr.", "Cpl.", "Sgt.", "Lt.", "Tech.", "Eng.", "Spec."}

var loreLocations = []string{
	"Sublevel 2", "Lab C", "Junction 7", "Corridor B-12",
	"Crew Quarters Alpha", "Engineering Bay", "Medical Wing",
	"Comms Array", "Server Room", "Lower Processing",
	"Storage Deck 4", "Reactor Anteroom", "Observation Blister",
	"Maintenance Shaft 9", "Pressurisation Hub",
}

var loreEquipment = []string{
	"relay junction", "cooling system", "pressure seal",
	"atmospheric processor", "data node", "ventilation shaft",
	"power conduit", "hull sensor array", "thermal regulator",
	"secondary comms relay", "emergency beacon", "life-support module",
}

var loreDepts = []string{"Engineering", "Research", "Security", "Medical", "Command"}

// loreVars — один розыгрыш подстановок, общий для всех шаблонов.
type loreVars struct {
	Name  string
	Rank  string
	Loc   string
	Equip string
	Dept  string
	Dept2 string
	Day   int
	Entry int
}

// loreTemplate возвращает заголовок, секции тела и подписи.
// Секция — три яруса тона, в каждом варианты строк. Подписи устроены
// так же; nil — шаблон обходится без подписи.
type loreTemplate func(v loreVars) (string, [][][]string, [][]string)

var loreTemplates = []loreTemplate{
	personalLog,
	maintenanceLog,
	securityReport,
	researchNote,
	commsFragment,
	internalMemo,
}

// GenerateTerminalEntry собирает запись терминала под глубину этажа.
// Вся случайность из переданного rng: один сид, одна запись.
func GenerateTerminalEntry(depth int, rng *rand.Rand) (string, []string) {
	tier := loreTier(depth)

	v := loreVars{
		Day:   loreDay(tier, rng),
		Entry: randRange(rng, 1, 12),
		Name:  loreCrewNames[rng.Intn(len(loreCrewNames))],
		Rank:  loreRanks[rng.Intn(len(loreRanks))],
		Loc:   loreLocations[rng.Intn(len(loreLocations))],
		Equip: loreEquipment[rng.Intn(len(loreEquipment))],
	}
	di := rng.Intn(len(loreDepts))
	dj := rng.Intn(len(loreDepts) - 1)
	if dj >= di {
		dj++
	}
	v.Dept, v.Dept2 = loreDepts[di], loreDepts[dj]

	title, sections, signOffs := loreTemplates[rng.Intn(len(loreTemplates))](v)

	var lines []string
	for i, section := range sections {
		opts := section[tier]
		sentence := opts[rng.Intn(len(opts))]
		if sentence == "" {
			continue
		}
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sentence)
	}

	// Подпись не обязательна: примерно треть записей обрывается без нее.
	if len(signOffs) > 0 && rng.Float64() < 0.7 {
		opts := signOffs[tier]
		sign := opts[rng.Intn(len(opts))]
		if sign != "" {
			lines = append(lines, "", sign)
		}
	}

	return title, lines
}

// loreTier — ярус тона: 0 быт, 1 тревога, 2 отчаяние.
func loreTier(depth int) int {
	switch {
	case depth <= 3:
		return 0
	case depth <= 6:
		return 1
	default:
		return 2
	}
}

func loreDay(tier int, rng *rand.Rand) int {
	switch tier {
	case 0:
		return randRange(rng, 1, 20)
	case 1:
		return randRange(rng, 21, 50)
	default:
		return randRange(rng, 51, 80)
	}
}

// --- Шаблоны ---

func personalLog(v loreVars) (string, [][][]string, [][]string) {
	title := fmt.Sprintf("PERSONAL LOG — %s %s — Day %d", v.Rank, v.Name, v.Day)
	sections := [][][]string{
		{
			{
				fmt.Sprintf("Settling into the routine. %s is quieter than I expected.", v.Loc),
				fmt.Sprintf("Day %d aboard. Shift runs smooth. No complaints worth logging.", v.Day),
			},
			{
				"Something feels off today. Can't pin it down.",
				fmt.Sprintf("The atmosphere on %s has changed. People aren't talking like they used to.", v.Loc),
			},
			{
				"I don't sleep anymore. Not really.",
				fmt.Sprintf("I write this in case I don't wake up. Day %d. I'm still here. For now.", v.Day),
			},
		},
		{
			{
				fmt.Sprintf("Ran diagnostics on the %s. All nominal. Filed report per standard.", v.Equip),
				"Team meeting went long. Resource allocation disputes, nothing serious.",
			},
			{
				fmt.Sprintf("I submitted a query about the %s anomaly. No response from Command.", v.Equip),
				fmt.Sprintf("Twice now the %s has failed during the same time window. Not random.", v.Equip),
			},
			{
				fmt.Sprintf("The %s in %s is beyond repair. I've stopped trying.", v.Equip, v.Loc),
				fmt.Sprintf("Found markings on the wall near %s. Looked like writing. I couldn't read it.", v.Loc),
			},
		},
	}
	signOffs := [][]string{
		{
			fmt.Sprintf("Standard shift. Nothing to report. — %s %s", v.Rank, v.Name),
			fmt.Sprintf("Signing off. Back on deck in six. — %s", v.Name),
		},
		{
			fmt.Sprintf("I'll raise it with the supervisor tomorrow. — %s", v.Name),
			fmt.Sprintf("Keeping this between me and the log for now. — %s %s", v.Rank, v.Name),
		},
		{
			"If anyone reads this — the lower levels are not safe.",
			"Don't come looking for me.",
		},
	}
	return title, sections, signOffs
}

func maintenanceLog(v loreVars) (string, [][][]string, [][]string) {
	title := fmt.Sprintf("MAINTENANCE LOG — %s — Day %d", v.Loc, v.Day)
	sections := [][][]string{
		{
			{
				fmt.Sprintf("Routine inspection of %s completed. No faults detected.", v.Equip),
				fmt.Sprintf("Replaced worn seals on the %s. Two-hour job, within schedule.", v.Equip),
			},
			{
				fmt.Sprintf("Unexplained power draw recorded near the %s. Source unconfirmed.", v.Equip),
				fmt.Sprintf("The %s in %s is cycling without input. Third occurrence.", v.Equip, v.Loc),
			},
			{
				fmt.Sprintf("The %s is non-functional. Cause: unknown. Recommend abandonment.", v.Equip),
				"Stopped logging faults. There are too many. The system is failing.",
			},
		},
		{
			{
				fmt.Sprintf("Maintenance completed per schedule. Next inspection: Day %d.", v.Day+14),
				"All readings logged. Flagged for next quarterly review.",
			},
			{
				"Submitted fault report. Awaiting authorisation to investigate further.",
				fmt.Sprintf("I've isolated the %s and notified %s. They haven't responded.", v.Equip, v.Dept),
			},
			{
				"No action possible. I'm logging this for the record.",
				"I tried. It didn't work.",
			},
		},
	}
	signOffs := [][]string{
		{
			fmt.Sprintf("— %s %s, %s", v.Rank, v.Name, v.Dept),
			fmt.Sprintf("Signed: %s / %s", v.Name, v.Dept),
		},
		{
			fmt.Sprintf("— %s %s (flagged for follow-up)", v.Rank, v.Name),
			fmt.Sprintf("This needs senior review. — %s", v.Name),
		},
		{
			"",
			"[ENTRY TRUNCATED]",
		},
	}
	return title, sections, signOffs
}

func securityReport(v loreVars) (string, [][][]string, [][]string) {
	title := fmt.Sprintf("SECURITY REPORT — %s — Day %d", v.Loc, v.Day)
	sections := [][][]string{
		{
			{
				fmt.Sprintf("Patrol of %s completed without incident. All checkpoints clear.", v.Loc),
				"Access log review complete. No unauthorised entries this period.",
			},
			{
				fmt.Sprintf("Door sensor at %s tripped at 0300 hours. No one logged in that corridor.", v.Loc),
				fmt.Sprintf("Three crew members reported hearing voices in %s. Investigation ongoing.", v.Loc),
			},
			{
				fmt.Sprintf("We've lost contact with the patrol assigned to %s.", v.Loc),
				fmt.Sprintf("Something moved past the camera at %s at 0214. It wasn't crew.", v.Loc),
			},
		},
		{
			{
				"Standard patrol schedule maintained. No escalation required.",
				"Logging complete. No further action at this time.",
			},
			{
				fmt.Sprintf("Increased patrol frequency near %s. Crew advised to travel in pairs.", v.Loc),
				fmt.Sprintf("Requested backup from %s. Awaiting authorisation.", v.Dept),
			},
			{
				"I've sealed what I can. It's not enough.",
				"Arming remaining crew. Pray it helps.",
			},
		},
	}
	signOffs := [][]string{
		{
			fmt.Sprintf("— %s %s, Security", v.Rank, v.Name),
			fmt.Sprintf("Submitted per protocol. — %s", v.Name),
		},
		{
			fmt.Sprintf("Escalating to Command. — %s %s", v.Rank, v.Name),
			fmt.Sprintf("This is above my clearance. — %s", v.Name),
		},
		{
			fmt.Sprintf("— %s [last patrol]", v.Name),
			"",
		},
	}
	return title, sections, signOffs
}

func researchNote(v loreVars) (string, [][][]string, [][]string) {
	title := fmt.Sprintf("RESEARCH NOTE — %s — Entry %d", v.Name, v.Entry)
	sections := [][][]string{
		{
			{
				fmt.Sprintf("Baseline readings from the %s logged at 0600. All within expected range.", v.Equip),
				fmt.Sprintf("Sample collection completed in %s. Catalogued and refrigerated.", v.Loc),
			},
			{
				"The readings don't fit any model I can apply.",
				"Repeating the experiment with different parameters yields the same result.",
			},
			{
				"I've stopped trying to explain it. I'm just documenting now.",
				"Every measurement confirms what I don't want to confirm.",
			},
		},
		{
			{
				"Preliminary analysis suggests normal variance. Further observation warranted.",
				fmt.Sprintf("Requesting additional equipment from %s to continue analysis.", v.Dept),
			},
			{
				fmt.Sprintf("Working hypothesis: the source is below %s. Depth unknown.", v.Loc),
				"The pattern is not random. I'm increasingly certain of it.",
			},
			{
				"It knows we're looking. I can't prove that. I know it anyway.",
				"The question was never whether it's real. The question is what it wants.",
			},
		},
	}
	signOffs := [][]string{
		{
			fmt.Sprintf("— %s, %s", v.Name, v.Dept),
			fmt.Sprintf("Next entry scheduled for Day %d.", v.Day+3),
		},
		{
			fmt.Sprintf("— %s (restricted distribution)", v.Name),
			fmt.Sprintf("Do not share without authorisation. — %s", v.Name),
		},
		{
			"[ENTRY ENDS]",
			fmt.Sprintf("— %s", v.Name),
		},
	}
	return title, sections, signOffs
}

func commsFragment(v loreVars) (string, [][][]string, [][]string) {
	title := fmt.Sprintf("COMMS LOG — FRAGMENT — Day %d", v.Day)
	sections := [][][]string{
		{
			{
				"[PARTIAL TRANSCRIPT — CHANNEL 4]",
				fmt.Sprintf("[AUTOMATED RECORD — %s RELAY]", v.Loc),
			},
			{
				"[PARTIAL TRANSCRIPT — CHANNEL 4 — DEGRADED]",
				"[RECOVERED TRANSMISSION — QUALITY: POOR]",
			},
			{
				"[RECOVERED FRAGMENT — SOURCE UNKNOWN]",
				"[PARTIAL RECORD — ORIGIN: SUBLEVEL — TIMESTAMP CORRUPT]",
			},
		},
		{
			{
				fmt.Sprintf("%s: Confirm receipt of supply manifest. Over.", strings.ToUpper(v.Name)),
				fmt.Sprintf("DISPATCH: Routine check-in from %s. Crew status nominal.", v.Loc),
			},
			{
				fmt.Sprintf("%s: Something's wrong with the %s. I need someone down here.", strings.ToUpper(v.Name), v.Equip),
				fmt.Sprintf("UNKNOWN: If you can hear this, do not come to %s.", v.Loc),
			},
			{
				"[UNINTELLIGIBLE] — please — [UNINTELLIGIBLE] — still here —",
				"VOICE: I see you reading this. I've always seen you.",
			},
		},
		{
			{
				"[END TRANSMISSION]",
				"[CONNECTION CLOSED — NORMAL TERMINATION]",
			},
			{
				"[SIGNAL LOST]",
				"[END OF RECOVERED SEGMENT]",
			},
			{
				"[RECORD ENDS]",
				"[FURTHER DATA UNRECOVERABLE]",
			},
		},
	}
	return title, sections, nil
}

func internalMemo(v loreVars) (string, [][][]string, [][]string) {
	title := fmt.Sprintf("INTERNAL MEMO — %s TO %s", v.Dept, v.Dept2)
	sections := [][][]string{
		{
			{
				fmt.Sprintf("RE: %s MAINTENANCE SCHEDULE", strings.ToUpper(v.Equip)),
				fmt.Sprintf("RE: CREW ROTATION — %s", strings.ToUpper(v.Loc)),
			},
			{
				fmt.Sprintf("RE: UNEXPLAINED INCIDENTS — %s — RESTRICTED", strings.ToUpper(v.Loc)),
				"RE: ANOMALY REPORT SUPPRESSION — EYES ONLY",
			},
			{
				"RE: TOTAL COMMS BLACKOUT — IMMEDIATE EFFECT",
				"RE: CONTAINMENT FAILURE — DO NOT FORWARD",
			},
		},
		{
			{
				fmt.Sprintf("Please ensure the %s inspection is completed by end of cycle.", v.Equip),
				fmt.Sprintf("Crew rotation for %s is confirmed. No changes to current schedule.", v.Loc),
			},
			{
				fmt.Sprintf("Three separate reports from %s have been escalated. Do not share externally.", v.Loc),
				fmt.Sprintf("Staff in %s are asking questions we cannot answer. Redirect them.", v.Dept2),
			},
			{
				"Standard protocols are no longer applicable. Use your judgement.",
				"Disregard previous guidance. Survival takes priority.",
			},
		},
		{
			{
				fmt.Sprintf("— %s Operations, Day %d", v.Dept, v.Day),
				fmt.Sprintf("Regards, %s / %s", v.Name, v.Dept),
			},
			{
				fmt.Sprintf("— %s %s, Acting %s Lead", v.Rank, v.Name, v.Dept),
				fmt.Sprintf("This does not go in the public record. — %s", v.Name),
			},
			{
				"[SENDER UNVERIFIED]",
				fmt.Sprintf("— %s", v.Name),
			},
		},
	}
	return title, sections, nil
}
