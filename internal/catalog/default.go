package catalog

// Default returns the catalog used by the school network.
func Default() *Catalog {
	return New(defaultEntries, defaultUnits, map[Unit][]string{
		UnitCDR: {"995"},
	})
}

var defaultUnits = []UnitInfo{
	{Code: UnitBV, Name: "Boa Viagem", SISKey: 2},
	{Code: UnitCD, Name: "Jaboatão", SISKey: 3},
	{Code: UnitJG, Name: "Paulista", SISKey: 4},
	{Code: UnitCDR, Name: "Cordeiro", SISKey: 5},
}

var defaultEntries = []Entry{
	{Code: "901", Name: "SISTEM. ELO - INF. 2", Segment: SegmentInfantil, Grade: "Infantil II", Line: LineCurriculum},
	{Code: "902", Name: "SISTEM. ELO - INF. 3", Segment: SegmentInfantil, Grade: "Infantil III", Line: LineCurriculum},
	{Code: "903", Name: "SISTEM. ELO - INF. 4", Segment: SegmentInfantil, Grade: "Infantil IV", Line: LineCurriculum},
	{Code: "904", Name: "SISTEM. ELO - INF. 5", Segment: SegmentInfantil, Grade: "Infantil V", Line: LineCurriculum},
	{Code: "921", Name: "SISTEM. ELO - 1 ANO", Segment: SegmentFund1, Grade: "1º Ano", Line: LineCurriculum},
	{Code: "920", Name: "SISTEM. ELO - 2 ANO", Segment: SegmentFund1, Grade: "2º Ano", Line: LineCurriculum},
	{Code: "913", Name: "SISTEM. ELO - 3 ANO", Segment: SegmentFund1, Grade: "3º Ano", Line: LineCurriculum},
	{Code: "914", Name: "SISTEM. ELO - 4 ANO", Segment: SegmentFund1, Grade: "4º Ano", Line: LineCurriculum},
	{Code: "915", Name: "SISTEM. ELO - 5 ANO", Segment: SegmentFund1, Grade: "5º Ano", Line: LineCurriculum},
	{Code: "916", Name: "SISTEM. ELO - 6 ANO", Segment: SegmentFund2, Grade: "6º Ano", Line: LineCurriculum},
	{Code: "917", Name: "SISTEM. ELO - 7 ANO", Segment: SegmentFund2, Grade: "7º Ano", Line: LineCurriculum},
	{Code: "918", Name: "SISTEM. ELO - 8 ANO", Segment: SegmentFund2, Grade: "8º Ano", Line: LineCurriculum},
	{Code: "919", Name: "SISTEM. ELO - 9 ANO", Segment: SegmentFund2, Grade: "9º Ano", Line: LineCurriculum},
	{Code: "912", Name: "SISTEM. ELO - 1 MEDIO", Segment: SegmentMedio, Grade: "1º Ano", Line: LineCurriculum},
	{Code: "991", Name: "SISTEM. ELO - 2 MEDIO", Segment: SegmentMedio, Grade: "2º Ano", Line: LineCurriculum},
	{Code: "992", Name: "SISTEM. ELO - 3 MEDIO", Segment: SegmentMedio, Grade: "3º Ano", Line: LineCurriculum},

	{Code: "933", Name: "PROJETO SOCIO EMOCIONAL 4", Segment: SegmentInfantil, Grade: "Infantil IV", Line: LineSocioEmotional},
	{Code: "934", Name: "PROJETO SOCIO EMOCIONAL 5", Segment: SegmentInfantil, Grade: "Infantil V", Line: LineSocioEmotional},
	{Code: "941", Name: "PROJETO SOCIO EMOCIONAL 1 ANO", Segment: SegmentFund1, Grade: "1º Ano", Line: LineSocioEmotional},
	{Code: "942", Name: "PROJETO SOCIO EMOCIONAL 2 ANO", Segment: SegmentFund1, Grade: "2º Ano", Line: LineSocioEmotional},
	{Code: "943", Name: "PROJETO SOCIO EMOCIONAL 3 ANO", Segment: SegmentFund1, Grade: "3º Ano", Line: LineSocioEmotional},
	{Code: "944", Name: "PROJETO SOCIO EMOCIONAL 4 ANO", Segment: SegmentFund1, Grade: "4º Ano", Line: LineSocioEmotional},
	{Code: "945", Name: "PROJETO SOCIO EMOCIONAL 5 ANO", Segment: SegmentFund1, Grade: "5º Ano", Line: LineSocioEmotional},
	{Code: "946", Name: "PROJETO SOCIOEMOCIONAL 6 ANO", Segment: SegmentFund2, Grade: "6º Ano", Line: LineSocioEmotional},

	{Code: "995", Name: "ELO TECH", Segment: SegmentGeneral, Grade: GradeUndetermined, Line: LineTechnology},
}
