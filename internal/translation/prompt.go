package translation

import (
	"fmt"

	"codeberg.org/snonux/rimlocale/internal/llm"
)

const instructionPrompt = `
You will be given a language, and a Rimworld mod xml file to translate.
You must translate the appropriate user-facing strings in the xml file to the specified language.

# Example input:
1.6/Defs/ThoughtDef/PleasantFishingTrip.xml
` + "```" + `
<?xml version="1.0" encoding="utf-8"?>
<Defs>
  <ThoughtDef>
    <defName>PleasantFishingTrip</defName>
    <durationDays>0.25</durationDays>
    <stackLimit>1</stackLimit>
    <thoughtClass>Thought_Memory</thoughtClass>
    <label>pleasant fishing trip</label>
    <stages>
      <li>
        <label>Went fishing</label>
        <description>It was nice to enjoy some peace while fishing for a bit.</description>
        <baseMoodEffect>3</baseMoodEffect>
      </li>
    </stages>
  </ThoughtDef>
</Defs>
` + "```" + `

# Example output:
1.6/Languages/Catalan/DefInjected/ThoughtDef/PleasantFishingTrip.xml
` + "```" + `
<?xml version="1.0" encoding="utf-8"?>
<LanguageData>

  <PleasantFishingTrip.label>Agradable jornada de pesca</PleasantFishingTrip.label>
  <PleasantFishingTrip.stages.Went_fishing.label>Va anar a pescar</PleasantFishingTrip.stages.Went_fishing.label>
  <PleasantFishingTrip.stages.Went_fishing.description>Va ser agradable gaudir d'una mica de pau mentre pescava durant una estona.</PleasantFishingTrip.stages.Went_fishing.description>

</LanguageData>
` + "```" + `

You will be expected to also provide the path to the new file, and ensure that the output is in the correct format for RimWorld modding.

# Path formatting:
<Version>/Languages/<Language>/DefInjected/<MatchedRelativePath>/<OriginalFileName>.xml
If the source file starts with a version number, like "1.6/", you must also include that in the output path.
If a version is not present, just start with "Languages/**"

Keyed files are already language data. Translate the values, keep every key, and replace "English" in the path with the target language:
<Version>/Languages/<Language>/Keyed/<MatchedRelativePath>/<OriginalFileName>.xml

Other path examples:
In: 1.6/Defs/ThoughtDef/PleasantFishingTrip.xml
Out: 1.6/Languages/Catalan/DefInjected/ThoughtDef/PleasantFishingTrip.xml

In: Defs/ResearchDef/ResearchProjectDef.xml
Out: Languages/French/DefInjected/ResearchDef/ResearchProjectDef.xml

In: 1.5/Defs/BuildingDef/SkyScraperDef/SkyRise.xml
Out: 1.5/Languages/French/DefInjected/BuildingDef/SkyScraperDef/SkyRise.xml

In: Languages/English/Keyed/Messages.xml
Out: Languages/German/Keyed/Messages.xml

# Additional documentation
https://rimworldwiki.com/wiki/Modding_Tutorials/Localization
`

const formatPrompt = "You will be expected to provide the output file in backticks, with the path to the new file on the first line, followed by the translated XML content"

// BuildPrompt returns the messages that ask the model to translate contents
// of relPath into language. Only the last two messages vary between calls,
// so the shared prefix can be reused by the gateway's own prompt caching.
func BuildPrompt(language, relPath, contents string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: instructionPrompt},
		{Role: llm.RoleDeveloper, Content: formatPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Language: '%s'", language)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("%s\n```%s```", relPath, contents)},
	}
}
