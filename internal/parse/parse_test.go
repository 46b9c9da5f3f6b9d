package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTop = `top - 10:02:11 up 3 days, 22:13,  2 users,  load average: 0.52, 0.58, 0.59
Tasks: 312 total,   1 running, 311 sleeping,   0 stopped,   0 zombie
%Cpu(s):  4.5 us,  1.2 sy,  0.0 ni, 93.8 id,  0.3 wa,  0.0 hi,  0.2 si,  0.0 st
MiB Mem :  15897.4 total,   2012.2 free,   8123.1 used,   5762.1 buff/cache
`

const sampleFree = `              total        used        free      shared  buff/cache   available
Mem:        16000000     8000000     1500000      300000     6500000     7000000
Swap:        4000000     1000000     3000000
`

const sampleFreeNoSwap = `              total        used        free      shared  buff/cache   available
Mem:        16000000     8000000     1500000      300000     6500000     7000000
Swap:              0           0           0
`

const sampleDf = `Filesystem        1B-blocks         Used    Available Use% Mounted on
tmpfs            1626783744      2097152   1624686592   1% /run
/dev/nvme0n1p2 502392610816 380240134144 96551256064  80% /
/dev/nvme0n1p1    535805952      6186496    529619456   2% /boot/efi
overlay        502392610816 380240134144 96551256064  80% /var/lib/docker/overlay2
`

const samplePsCPU = `    PID USER     %CPU COMMAND
   1234 alice    42.0 chrome
    987 root     13.5 dockerd
   4321 alice     7.2 code
      1 root      0.3 systemd
   2222 bob       0.1 sshd
   3333 bob       0.0 bash
`

const sampleWho = `alice    pts/0        2026-08-31 09:14 (192.168.1.50)
bob      tty1         2026-08-30 18:02
alice    pts/1        2026-08-31 10:00 (10.0.0.7)
`

const sampleLastb = `root     ssh:notty    203.0.113.9      Sun Aug 31 03:12 - 03:12  (00:00)
admin    ssh:notty    203.0.113.9      Sun Aug 31 03:11 - 03:11  (00:00)

btmp begins Mon Aug  4 00:17:21 2026
`

const sampleSS = `Netid State  Recv-Q Send-Q Local Address:Port Peer Address:Port
udp   UNCONN 0      0      127.0.0.53%lo:53   0.0.0.0:*
tcp   LISTEN 0      128    0.0.0.0:22         0.0.0.0:*
tcp   LISTEN 0      511    127.0.0.1:80       0.0.0.0:*
tcp   LISTEN 0      4096   [::]:22            [::]:*
`

const sampleOSRelease = `NAME="Ubuntu"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
ID=ubuntu
PRETTY_NAME="Ubuntu 22.04.4 LTS"
`

func TestCPUIdle(t *testing.T) {
	idle, err := CPUIdle(sampleTop)
	require.NoError(t, err)
	assert.InDelta(t, 93.8, idle, 0.001)
}

func TestCPUIdleMissingLine(t *testing.T) {
	_, err := CPUIdle("Tasks: 10 total\nMiB Mem : 1000 total\n")
	assert.Error(t, err)
}

func TestCPUIdleMissingField(t *testing.T) {
	_, err := CPUIdle("%Cpu(s):  4.5 us,  1.2 sy\n")
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	m, err := Memory(sampleFree)
	require.NoError(t, err)
	assert.Equal(t, uint64(16000000), m.Total)
	assert.Equal(t, uint64(8000000), m.Used)
	assert.Equal(t, uint64(7000000), m.Available)
}

func TestMemoryTruncatedRow(t *testing.T) {
	_, err := Memory("Mem: 100 50 25\n")
	assert.Error(t, err)
}

func TestSwap(t *testing.T) {
	s, err := Swap(sampleFree)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000000), s.Total)
	assert.Equal(t, uint64(1000000), s.Used)
}

func TestSwapZeroTotal(t *testing.T) {
	s, err := Swap(sampleFreeNoSwap)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.Total)
}

func TestDisk(t *testing.T) {
	rows := Disk(sampleDf, "/dev/")
	require.Len(t, rows, 2)

	assert.Equal(t, "/dev/nvme0n1p2", rows[0].Filesystem)
	assert.Equal(t, "/", rows[0].Mountpoint)
	assert.Equal(t, uint64(502392610816), rows[0].Total)
	assert.InDelta(t, 80.0, rows[0].UsedPercent, 0.001)

	// tmpfs and overlay rows have no /dev/ prefix and are skipped
	assert.Equal(t, "/boot/efi", rows[1].Mountpoint)
}

func TestDiskEmptyOutput(t *testing.T) {
	assert.Empty(t, Disk("", "/dev/"))
}

func TestProcessesTopFive(t *testing.T) {
	rows, err := Processes(samplePsCPU, 5)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, int32(1234), rows[0].PID)
	assert.Equal(t, "alice", rows[0].User)
	assert.InDelta(t, 42.0, rows[0].Percent, 0.001)
	assert.Equal(t, "chrome", rows[0].Command)

	// sorted input stays descending
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Percent, rows[i].Percent)
	}
}

func TestProcessesFewerThanN(t *testing.T) {
	rows, err := Processes("  PID USER %CPU COMMAND\n  1 root 0.1 init\n", 5)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProcessesHeaderOnly(t *testing.T) {
	_, err := Processes("  PID USER %CPU COMMAND\n", 5)
	assert.Error(t, err)
}

func TestUptimePretty(t *testing.T) {
	s, err := UptimePretty("up 3 days, 22 hours, 13 minutes\n")
	require.NoError(t, err)
	assert.Equal(t, "3 days, 22 hours, 13 minutes", s)
}

func TestUptimeClassic(t *testing.T) {
	s, err := UptimeClassic(" 10:02:11 up 3 days, 22:13,  2 users,  load average: 0.52, 0.58, 0.59\n")
	require.NoError(t, err)
	assert.Equal(t, "3 days, 22:13", s)
}

func TestUptimeClassicShortForm(t *testing.T) {
	s, err := UptimeClassic(" 10:02:11 up 23 min,  1 user,  load average: 0.52, 0.58, 0.59\n")
	require.NoError(t, err)
	assert.Equal(t, "23 min", s)
}

func TestLoadAverage(t *testing.T) {
	l1, l5, l15, err := LoadAverage(" 10:02:11 up 3 days, 22:13,  2 users,  load average: 0.52, 0.58, 0.59")
	require.NoError(t, err)
	assert.InDelta(t, 0.52, l1, 0.001)
	assert.InDelta(t, 0.58, l5, 0.001)
	assert.InDelta(t, 0.59, l15, 0.001)
}

func TestLoadAverageMissing(t *testing.T) {
	_, _, _, err := LoadAverage("10:02:11 up 3 days")
	assert.Error(t, err)
}

func TestSessions(t *testing.T) {
	sessions := Sessions(sampleWho)
	require.Len(t, sessions, 3)

	assert.Equal(t, "alice", sessions[0].User)
	assert.Equal(t, "pts/0", sessions[0].TTY)
	assert.Equal(t, "2026-08-31 09:14", sessions[0].LoginTime)
	assert.Equal(t, "192.168.1.50", sessions[0].Host)

	// local session has no origin host
	assert.Equal(t, "bob", sessions[1].User)
	assert.Empty(t, sessions[1].Host)
}

func TestSessionsEmpty(t *testing.T) {
	assert.Empty(t, Sessions(""))
}

func TestFailedLogins(t *testing.T) {
	records := FailedLogins(sampleLastb, 10)
	require.Len(t, records, 2)
	assert.Contains(t, records[0], "root")
	assert.Contains(t, records[1], "admin")
}

func TestFailedLoginsCapped(t *testing.T) {
	records := FailedLogins(sampleLastb, 1)
	assert.Len(t, records, 1)
}

func TestListeningPorts(t *testing.T) {
	assert.Equal(t, 3, ListeningPorts(sampleSS))
	assert.Equal(t, 0, ListeningPorts(""))
}

func TestOSRelease(t *testing.T) {
	name, ok := OSRelease(sampleOSRelease)
	require.True(t, ok)
	assert.Equal(t, "Ubuntu 22.04.4 LTS", name)

	_, ok = OSRelease("ID=minimal\n")
	assert.False(t, ok)
}

func TestLSBRelease(t *testing.T) {
	name, ok := LSBRelease("DISTRIB_ID=Ubuntu\nDISTRIB_DESCRIPTION=\"Ubuntu 22.04.4 LTS\"\n")
	require.True(t, ok)
	assert.Equal(t, "Ubuntu 22.04.4 LTS", name)
}
