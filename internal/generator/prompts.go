package generator

import (
	"fmt"
	"strings"

	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/scan"
)

// Per-kind context caps. Sources are already bounded by the scanner; these
// further trim what each document kind actually needs, keeping call cost flat.
const (
	archSourceCount = 20
	archSourceChars = 3000
	apiSourceCount  = 30
	apiSourceChars  = 4000
	logContextChars = 2000
)

// langInstructions selects the writing-language directive per concrete
// output language. "both" mode expands to one job per language upstream, so
// only concrete tags appear here.
var langInstructions = map[string]string{
	"en": "Write all documentation in English.",
	"ja": "Write all documentation in Japanese (日本語).",
}

// BuildRequest assembles the generation request for one document from the
// repository snapshot. Kind decides which parts of the snapshot are relevant:
// history-derived kinds lead with the commit log, file-derived kinds with the
// source tree.
func BuildRequest(kind docplan.Kind, lang string, snap *scan.Snapshot) Request {
	li, ok := langInstructions[lang]
	if !ok {
		li = langInstructions["en"]
	}

	req := Request{Kind: kind, Lang: lang}
	switch kind {
	case docplan.KindArchitecture:
		req.System = fmt.Sprintf(`You are a senior software architect writing clear documentation.
%s
Write in Markdown. Be concise but thorough. Use diagrams (Mermaid syntax) where helpful.
Target audience: a new developer joining the project with no context.`, li)
		req.Prompt = architecturePrompt(snap)
	case docplan.KindAPI:
		req.System = fmt.Sprintf(`You are a technical writer creating API documentation.
%s
Write in Markdown. Include code examples for every endpoint/function.
Target audience: a developer who wants to integrate with or use this project.`, li)
		req.Prompt = apiPrompt(snap)
	case docplan.KindOnboarding:
		req.System = fmt.Sprintf(`You are writing an onboarding guide for new developers.
%s
Write in Markdown. Be extremely friendly and assume zero context.
Use numbered steps. Include exact commands to copy-paste.
Target audience: someone who just cloned this repo and has never seen it before.`, li)
		req.Prompt = onboardingPrompt(snap)
	case docplan.KindDecisions:
		req.System = fmt.Sprintf(`You are a software historian reconstructing project decisions from git history.
%s
Write in Markdown. Use a table format for the decision log.
Be factual - only infer decisions that are clearly supported by the evidence.`, li)
		req.Prompt = decisionsPrompt(snap)
	case docplan.KindChangelog:
		req.System = fmt.Sprintf(`You are maintaining a human-readable changelog from git history.
%s
Write in Markdown following the Keep a Changelog style: group entries under
Added, Changed, Fixed and Removed headings. Summarize, do not transcribe.`, li)
		req.Prompt = changelogPrompt(snap)
	}
	return req
}

func sourceSection(sources []scan.SourceFile, count, chars int) string {
	var b strings.Builder
	for i, s := range sources {
		if i >= count {
			break
		}
		content := s.Content
		if len(content) > chars {
			content = content[:chars]
		}
		fmt.Fprintf(&b, "### %s\n```\n%s\n```\n\n", s.Path, content)
	}
	return b.String()
}

func configSection(configs []scan.ConfigFile, chars int) string {
	var b strings.Builder
	for _, c := range configs {
		content := c.Content
		if chars > 0 && len(content) > chars {
			content = content[:chars]
		}
		fmt.Fprintf(&b, "### %s\n```\n%s\n```\n\n", c.Path, content)
	}
	return b.String()
}

func architecturePrompt(snap *scan.Snapshot) string {
	return fmt.Sprintf(`Analyze this codebase and generate an ARCHITECTURE.md document.

## Directory Structure
%s

## Config Files
%s
## Source Files (samples)
%s
## Required Sections
1. **Project Overview** - What this project does (1-2 sentences a non-technical person can understand)
2. **Tech Stack** - Languages, frameworks, key dependencies (table format)
3. **Architecture Overview** - High-level system design with Mermaid diagram
4. **Directory Structure** - What each top-level directory contains
5. **Key Components** - The most important files/modules and what they do
6. **Data Flow** - How data moves through the system
7. **Configuration** - Key config files and environment variables
`, codeBlock(snap.Tree), configSection(snap.Configs, 0), sourceSection(snap.Sources, archSourceCount, archSourceChars))
}

func apiPrompt(snap *scan.Snapshot) string {
	return fmt.Sprintf(`Analyze these source files and generate API documentation.

## Config Files
%s
## Source Files
%s
## Required Sections
1. **API Overview** - What this API/library does
2. **Installation / Setup** - How to install and configure
3. **Authentication** (if applicable)
4. **Endpoints / Public Functions** - For each:
   - Method signature or HTTP method + path
   - Parameters (table: name, type, required, description)
   - Response format
   - Code example (request + response)
5. **Error Handling** - Common errors and how to handle them
6. **Rate Limits / Constraints** (if applicable)

If this is a library (not a web API), document the public interface:
exported functions, classes, and their methods with usage examples.
If no clear API is found, document the main entry points and public interfaces.
`, configSection(snap.Configs, 0), sourceSection(snap.Sources, apiSourceCount, apiSourceChars))
}

func onboardingPrompt(snap *scan.Snapshot) string {
	paths := make([]string, 0, len(snap.Sources))
	for _, s := range snap.Sources {
		paths = append(paths, "- "+s.Path)
	}
	return fmt.Sprintf(`Create an onboarding guide for this project.

## Directory Structure
%s

## Config Files
%s
## Source Files Present
%s

## Required Sections
1. **Welcome** - 1 sentence: what this project does
2. **Prerequisites** - What you need installed (with version numbers if detectable)
3. **Quick Start** - Numbered steps from git clone to running the project
4. **Project Structure** - Brief tour of important directories/files
5. **Common Tasks** - How to:
   - Run the project locally
   - Run tests
   - Add a new feature
   - Deploy (if applicable)
6. **Troubleshooting** - Common issues and fixes
7. **Where to Get Help** - Links, contacts, channels
`, codeBlock(snap.Tree), configSection(snap.Configs, 0), strings.Join(paths, "\n"))
}

func decisionsPrompt(snap *scan.Snapshot) string {
	return fmt.Sprintf(`Analyze this git history and project files to reconstruct key decisions.

## Git Log (recent commits)
%s

## Config Files
%s
## Required Output
Generate a DECISIONS.md with:

1. **Decision Log** - Table with columns:
   | Date | Decision | Reasoning (inferred) | Evidence |

   Include decisions about:
   - Technology choices (why this language/framework?)
   - Architecture patterns (why this structure?)
   - Dependency additions (why this library?)
   - Major refactors or migrations
   - Configuration changes

2. **Technology Choices Summary** - Why the current stack was likely chosen

3. **Open Questions** - Things that are unclear from the history and should be documented

Only include decisions you can reasonably infer. Mark uncertain inferences clearly.
`, codeBlock(strings.Join(snap.CommitLog, "\n")), configSection(snap.Configs, logContextChars))
}

func changelogPrompt(snap *scan.Snapshot) string {
	return fmt.Sprintf(`Generate a CHANGELOG.md from this git history.

## Git Log (recent commits, newest first)
%s

## Required Output
A changelog with an "Unreleased" section summarizing the recent commits,
grouped under Added / Changed / Fixed / Removed headings. Collapse related
commits into single entries. Reference commit hashes in parentheses.
`, codeBlock(strings.Join(snap.CommitLog, "\n")))
}

func codeBlock(text string) string {
	return "```\n" + text + "\n```"
}
