// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mimemap/internal/meta"
)

const bashCompletionScript = `# bash completion for mimemap
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_mimemap()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "build diff dump ext info mime purge completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--add --blank --cache -c --color --definitions -d --output -o --s3-bucket --s3-endpoint --s3-prefix --s3-profile --s3-region --titles -t"

    case "$cmd" in
        ext|mime)
            local opts="$common --all -a"
            ;;
        dump)
            local opts="$common --by --filter -f --query -q"
            ;;
        build)
            local opts="$common --quiet -Q"
            ;;
        diff)
            local opts="$common --fail --format --summary -s"
            ;;
        purge)
            local opts="$common --hours"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --by)
            COMPREPLY=( $(compgen -W "mime ext" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "ascii delta" -- "$cur") )
            return 0
            ;;
        --definitions|-d|--cache|-c)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    case "$cmd" in
        build|diff)
            COMPREPLY=( $(compgen -f -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _mimemap mimemap
`

const zshCompletionScript = `#compdef mimemap

_mimemap() {
  local -a cmds
  cmds=(
    'build:build a mapping and save it as a cache file'
    'diff:compare two cache files'
    'dump:list the whole mapping'
    'ext:extension lookup by MIME type'
    'info:show where the mapping comes from'
    'mime:MIME type lookup by extension'
    'purge:remove old files from the cache directory'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '*--add[extra association mime:ext]:association'
  '--blank[start from an empty mapping]'
  '(-c --cache)'{-c,--cache}'[cache file]:file:_files'
  '--color[enable colored text]'
  '(-d --definitions)'{-d,--definitions}'[definitions file]:file:_files'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--s3-bucket[S3 bucket]:bucket'
  '--s3-endpoint[S3 endpoint]:url'
  '--s3-prefix[S3 key prefix]:prefix'
  '--s3-profile[AWS profile]:profile'
  '--s3-region[AWS region]:region'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'mimemap commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    ext)
      _arguments -C $common '(-a --all)'{-a,--all}'[every extension]' '*:MIME type'
      ;;
    mime)
      _arguments -C $common '(-a --all)'{-a,--all}'[every MIME type]' '*:extension'
      ;;
    dump)
      _arguments -C \
        $common \
        '--by[row orientation]:by:(mime ext)' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-q --query)'{-q,--query}'[gjson query]:query'
      ;;
    build)
      _arguments -C $common '(-Q --quiet)'{-Q,--quiet}'[no summary]' '1:output:_files'
      ;;
    diff)
      _arguments -C \
        $common \
        '--fail[exit non-zero on differences]' \
        '--format[diff format]:format:(ascii delta)' \
        '(-s --summary)'{-s,--summary}'[counts only]' \
        '1:left:_files' '2:right:_files'
      ;;
    purge)
      _arguments -C $common '--hours[age in hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _mimemap mimemap
`

// CompletionCommandAction prints the completion script for the shell named
// by the first argument, or for $SHELL.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: mimemap completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "mimemap completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
